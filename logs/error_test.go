package logs

import (
	"context"
	"errors"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	base := errors.New("step limit reached")
	if err := WrapSpan(context.Background(), base); err != base {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), nil); err != nil {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("run.x"))
	if err := WrapSpan(ctx, nil); err != nil {
		t.Fatalf("got %v", err)
	}
	err := WrapSpan(ctx, base)
	if !errors.Is(err, base) {
		t.Fatalf("got %v", err)
	}
	var spanErr *SpanError
	if !errors.As(err, &spanErr) || spanErr.Span != "run.x" {
		t.Fatalf("got %v", err)
	}
	if err.Error() != "step limit reached (span: run.x)" {
		t.Fatalf("got %v", err)
	}

	// the innermost span is kept
	outer := context.WithValue(ctx, SpanKey, Span("compile.y"))
	if got := WrapSpan(outer, err); got != err {
		t.Fatalf("got %v", got)
	}
}
