package engine

import (
	"errors"
	"fmt"

	"planner/internal/kv"
	"planner/internal/storage"
)

// Stable error codes, in {domain}.{error} form.
const (
	CodeDecodeFailed  = "storage.decode_failed"
	CodeWriteFailed   = "storage.write_failed"
	CodeQuotaExceeded = "storage.quota_exceeded"
	CodeSerialization = "storage.serialization_failed"
	CodeImportInvalid = "import.format_invalid"
	CodeUnknown       = "internal.unknown"
)

// ImportFormatError indicates a user-supplied bundle was rejected. Nothing
// from it has been applied.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid backup file: %s", e.Reason)
	}
	return fmt.Sprintf("invalid backup file: %s: %v", e.Reason, e.Err)
}

func (e *ImportFormatError) Unwrap() error { return e.Err }

// Code maps err to its stable code. Nil maps to "".
func Code(err error) string {
	var (
		ife *ImportFormatError
		de  *storage.DecodeError
		we  *storage.WriteError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ife):
		return CodeImportInvalid
	case errors.Is(err, kv.ErrQuotaExceeded):
		return CodeQuotaExceeded
	case errors.As(err, &we):
		return CodeWriteFailed
	case errors.As(err, &de):
		return CodeDecodeFailed
	case errors.Is(err, storage.ErrSerialization):
		return CodeSerialization
	default:
		return CodeUnknown
	}
}
