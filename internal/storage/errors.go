package storage

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when the file name or the content is empty.
// No file-system access happens before it is returned.
var ErrValidation = errors.New("file name and content are required")

// Op names the storage operation that failed
type Op string

const (
	OpWriteInternal  Op = "write-internal"
	OpAppendInternal Op = "append-internal"
	OpWriteExternal  Op = "write-external"
	OpRead           Op = "read"
)

// Error describes an I/O fault during a storage operation
type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Succeeded collapses a storage result into the boolean shown to the user.
// Validation and I/O failures are indistinguishable here.
func Succeeded(err error) bool {
	return err == nil
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
