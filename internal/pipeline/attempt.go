package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Failure classes produced by extraction and validation. Each fallback link
// declares which class it can recover from, so a chain never burns a
// completion call on a failure it cannot fix.
var (
	errNoObject     = errors.New("pipeline: completion contained no JSON object")
	errMissingKey   = errors.New("pipeline: payload missing required key")
	errBadComponent = errors.New("pipeline: component type outside allowed set")
	errBadSubtype   = errors.New("pipeline: chart subtype missing or invalid")

	// ErrExhausted reports that every applicable attempt in a chain failed.
	ErrExhausted = errors.New("pipeline: all attempts failed")
)

// attemptLink is one bounded try at producing a value. recover reports
// whether this link applies to the previous failure; the first link always
// runs (recover is ignored).
type attemptLink[T any] struct {
	run     func(ctx context.Context) (T, error)
	recover func(err error) bool
}

// runFallbacks executes the chain until check accepts an output. It returns
// the accepted value and the number of completion attempts actually spent.
// Links whose recover rejects the standing failure are skipped for free.
// On exhaustion the last failure is wrapped in ErrExhausted.
func runFallbacks[T any](ctx context.Context, check func(T) error, links []attemptLink[T]) (T, int, error) {
	var zero T
	var lastErr error
	calls := 0
	for i, link := range links {
		if i > 0 && link.recover != nil && !link.recover(lastErr) {
			continue
		}
		out, err := link.run(ctx)
		calls++
		if err != nil {
			lastErr = err
			continue
		}
		if err := check(out); err != nil {
			lastErr = err
			continue
		}
		return out, calls, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no attempts were applicable")
	}
	return zero, calls, fmt.Errorf("%w: %w", ErrExhausted, lastErr)
}
