package workshare

import (
	"errors"
	"fmt"
)

// ErrFatal marks an error as an unrecoverable programmer error: the
// runtime has no caller to recover to, so these abort the process.
var ErrFatal = errors.New("workshare: fatal scheduling error")

// FatalError wraps an unrecoverable condition. Callers that genuinely have a recovery path can
// still errors.As it out of a recover(); generated loop code does not.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("workshare: fatal: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrFatal) {
		return true
	}
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}

// newFatal panics with a FatalError: an invalid policy or an
// uninitialized chunk has no caller to recover to.
func newFatal(format string, args ...any) {
	panic(&FatalError{Err: fmt.Errorf("%w: %s", ErrFatal, fmt.Sprintf(format, args...))})
}
