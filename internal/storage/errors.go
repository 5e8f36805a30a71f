package storage

import (
	"errors"
	"fmt"
)

// ErrSerialization is returned when an entity cannot be encoded. Nothing is
// written to the medium in that case.
var ErrSerialization = errors.New("storage: serialization failed")

// DecodeError indicates stored text under Key did not decode into its entity
// or failed the entity's schema. Repositories recover from it by returning
// the entity's default.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError indicates the medium refused a write (full or unavailable).
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
