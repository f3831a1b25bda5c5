// Package errors provides structured error types for wasm-dwarf.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending path or value, a detail message and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseStrip, errors.KindStripFailed).
//		Path("app.wasm").
//		Value(exitCode).
//		Detail("llvm-objcopy exited with status %d", exitCode).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ProcessLaunch("llvm-objcopy", cause)
//	err := errors.IO(errors.PhasePatch, "app-stripped.wasm", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match any error of their kind regardless of phase.
package errors
