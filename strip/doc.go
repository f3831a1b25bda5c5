// Package strip removes DWARF sections from WebAssembly modules.
//
// A Stripper reads an input module and writes a copy without debug sections
// to an output path. Two implementations are provided:
//
//   - Objcopy shells out to llvm-objcopy with --remove-section globs, the way
//     emscripten and wasi-sdk toolchains do it.
//   - Native walks the section framing in Go and drops matching custom
//     sections. It needs no toolchain installed.
//
// Both report failures as *errors.Error values: errors.KindProcessLaunch when
// the stripper could not be started at all, errors.KindStripFailed when it ran
// and did not succeed. A failed strip never proceeds silently; callers must not
// patch the output of a stripper that returned an error.
package strip
