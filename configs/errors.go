package configs

import (
	"errors"
	"fmt"
)

var ErrValueNotFound = errors.New("value not found")

// DecodeError is a value that does not fit the Go type it is decoded into.
type DecodeError struct {
	File string
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("config %s: %s: %v", e.File, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
