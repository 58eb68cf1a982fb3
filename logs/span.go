package logs

import "context"

// Span tags every record logged with a context derived from NewSpan.
type Span string

type spanKey struct{}

var SpanKey spanKey

// SpanOf returns the span of ctx, empty if there is none.
func SpanOf(ctx context.Context) Span {
	span, _ := ctx.Value(SpanKey).(Span)
	return span
}
