package logs

import (
	"context"
	"errors"
	"fmt"
)

// SpanError is an error raised under a span.
type SpanError struct {
	Err  error
	Span Span
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%v (span: %s)", e.Err, e.Span)
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// WrapSpan attaches the span of ctx to err. Nil errors, errors outside of a span and
// errors already carrying a span are returned as is.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span := SpanOf(ctx)
	if span == "" {
		return err
	}
	var spanErr *SpanError
	if errors.As(err, &spanErr) {
		return err
	}
	return &SpanError{
		Err:  err,
		Span: span,
	}
}
