// Package wasmdwarf moves DWARF debug info out of WebAssembly modules.
//
// Debug builds of a module carry their DWARF data in ".debug_*" custom
// sections, which often outweigh the code itself. wasm-dwarf strips those
// sections into a sibling module and appends an "external_debug_info" custom
// section that tells a debugger where the unstripped module lives.
//
// # Architecture Overview
//
//	wasmdwarf/
//	├── wasm/            LEB128 and custom-section framing
//	├── strip/           Stripper interface: llvm-objcopy or in-process
//	├── patch/           Strip, then append external_debug_info
//	├── verify/          Section report and wazero compile check
//	├── config/          wasm-dwarf.yml loading
//	├── errors/          Structured error types
//	└── cmd/wasm-dwarf/  Command line tool
//
// # Quick Start
//
//	p := patch.New(strip.NewObjcopy("/opt/wasi-sdk/bin/llvm-objcopy"))
//	err := p.Patch(ctx,
//	    "target/debug/app.wasm",
//	    "target/debug/app-stripped.wasm",
//	    "http://localhost:3000/wasm/debug")
//
// Or from the command line:
//
//	wasm-dwarf patch --url http://localhost:3000/wasm/debug app.wasm app-stripped.wasm
//
// # Errors
//
// Every failure is an *errors.Error. Match the kind with errors.Is:
//
//	switch {
//	case errors.Is(err, wderrors.ErrProcessLaunch): // objcopy could not start
//	case errors.Is(err, wderrors.ErrStripFailed):   // objcopy exited non-zero
//	case errors.Is(err, wderrors.ErrIO):            // append failed
//	}
package wasmdwarf
