package ir

import (
	"errors"
	"fmt"
)

var (
	ErrUnboundName  = errors.New("unbound name")
	ErrKindMismatch = errors.New("kind mismatch")
	ErrArity        = errors.New("arity mismatch")
	ErrSealed       = errors.New("state already built")
	ErrNotBuilt     = errors.New("state not built")
)

// InternalError reports a broken IR invariant. A machine produced by the linker never
// raises one; seeing it means the linker let a malformed node through.
type InternalError struct {
	Err    error
	Detail string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: %s", e.Err.Error(), e.Detail)
}

func (e InternalError) Unwrap() error {
	return e.Err
}

func internal(err error, format string, args ...any) {
	panic(InternalError{
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	})
}
