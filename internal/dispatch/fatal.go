package dispatch

import (
	"github.com/pkg/errors"
)

// FatalError marks a failure the process should not survive, such as the
// knowledge base refusing bookkeeping updates.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return "fatal: " + e.Err.Error() }
func (e *FatalError) Cause() error  { return e.Err }
func (e *FatalError) Unwrap() error { return e.Err }

// Fatal marks err as fatal. Fatal(nil) is nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err, or anything it wraps, is fatal.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
