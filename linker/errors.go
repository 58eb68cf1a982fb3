package linker

import (
	"errors"
	"fmt"

	"github.com/reusee/amc/ast"
)

var (
	ErrDuplicateDefinition  = errors.New("duplicate definition")
	ErrUnresolvedReference  = errors.New("unresolved reference")
	ErrNoInitialState       = errors.New("no initial state")
	ErrMultipleDefaultRules = errors.New("multiple default rules")
	ErrUnboundName          = errors.New("unbound name")
	ErrUnexpandedInclude    = errors.New("unexpanded include")
	ErrIncludeCycle         = errors.New("include cycle")

	ErrUnknownDeclarationKind = errors.New("unknown declaration kind")
	ErrUnknownActionKind      = errors.New("unknown action kind")
	ErrUnknownArgumentKind    = errors.New("unknown argument kind")
	ErrUnknownReferenceKind   = errors.New("unknown reference kind")
)

// Error is a link failure. Err is one of the sentinel errors above.
type Error struct {
	Err error
	// Name is the state, m-function, symbol or include path the error is about.
	Name string
	// Signature is set for errors about m-functions and calls.
	Signature []ast.ArgKind
	// Call reports whether the unresolved reference carried arguments.
	Call bool
	// In names the declaration the error was found in.
	In string
}

func (e *Error) Error() string {
	var msg string
	switch e.Err {
	case ErrUnresolvedReference:
		if e.Call {
			msg = "m-function not defined: " + ast.FormatSignature(e.Name, e.Signature)
		} else {
			msg = "state not defined: " + e.Name
		}
	case ErrDuplicateDefinition:
		msg = fmt.Sprintf("%s: %s", e.Err.Error(), ast.FormatSignature(e.Name, e.Signature))
	case ErrNoInitialState:
		msg = e.Err.Error()
	default:
		msg = fmt.Sprintf("%s: %s", e.Err.Error(), e.Name)
	}
	if e.In != "" {
		msg += " in " + e.In
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// unknown reports an AST node outside the closed node set.
func unknown(err error, node any) {
	panic(fmt.Errorf("%w: %T", err, node))
}
