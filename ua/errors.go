package ua

import (
	"errors"
	"fmt"
)

// LocalError is a validation error detected before any library call. It is
// reported to the caller with a short token instead of a status code.
type LocalError struct {
	Token string
}

func (e *LocalError) Error() string {
	return e.Token
}

// Local errors.
var (
	ErrInvalidArgument = &LocalError{"einval"}
	ErrOutOfRange      = &LocalError{"erange"}
	ErrNotFound        = &LocalError{"enoent"}
	ErrNoEntity        = &LocalError{"nil"}
	ErrBusy            = &LocalError{"eagain"}
)

// Errorf annotates a local error. The result still matches the local error
// with errors.Is and errors.As.
func Errorf(base *LocalError, format string, a ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), base)
}

// AsLocal returns the local error contained in err, if any.
func AsLocal(err error) (*LocalError, bool) {
	var le *LocalError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// AsStatus returns the status code contained in err, if any.
func AsStatus(err error) (StatusCode, bool) {
	var sc StatusCode
	if errors.As(err, &sc) {
		return sc, true
	}
	return 0, false
}
