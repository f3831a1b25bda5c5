// Package wasm provides the WebAssembly binary primitives used to patch
// modules after linking.
//
// It does not decode module contents. It knows three things about the
// binary format:
//
//   - unsigned LEB128, the variable-length integer encoding used for every
//     length and index in a module
//   - the framing of top-level sections (id byte, LEB128 size, payload)
//   - custom sections (a length-prefixed name followed by opaque data)
//
// # External DWARF
//
// A debug build carries its DWARF data in custom sections named ".debug_*".
// Shipping that build is expensive, so toolchains strip those sections and
// append an "external_debug_info" section whose data is a single
// length-prefixed string locating the unstripped module:
//
//	sec := wasm.ExternalDebugInfo("http://localhost:3000/wasm/debug")
//	f.Write(sec.Bytes())
//
// Debuggers that understand the convention follow the reference; loaders
// that do not simply skip the unknown custom section.
//
// # Scanning
//
// ScanSections walks the section headers of a module so callers can drop or
// locate sections without understanding them:
//
//	headers, err := wasm.ScanSections(data)
//	for _, h := range headers {
//	    if h.Matches(wasm.DebugSectionGlob) {
//	        // DWARF section
//	    }
//	}
package wasm
