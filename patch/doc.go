// Package patch moves a module's DWARF data out of the shipped binary.
//
// A patch runs in two strictly sequential steps:
//
//  1. A strip.Stripper writes a copy of the source module without its
//     ".debug*" sections.
//  2. An "external_debug_info" custom section is appended to that copy. Its
//     data is a reference (URL or relative path) to the source module, so a
//     debugger loading the stripped module can find the DWARF.
//
// Example:
//
//	p := patch.New(strip.NewObjcopy("/opt/wasi-sdk/bin/llvm-objcopy"))
//	err := p.Patch(ctx, "app.wasm", "app-stripped.wasm", "http://localhost:3000/wasm/debug")
//
// Appending never truncates or rewrites existing bytes. A failure while
// appending leaves a stripped but unpatched (or partially patched) file; the
// whole patch must then be rerun from a fresh strip.
package patch
