// Package errors provides structured error types for the meshblob module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a field path, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
//		Path("signature").
//		Value(sig).
//		Detail("unknown signature %q", sig).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseExtract, path, end, size)
//	err := errors.Unsupported(errors.PhaseConvert, path, format, "cannot swap implementation-specific format")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
