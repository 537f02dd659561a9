package router

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is matched by every *PatternError.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrBuilderConsumed is returned by Build on a builder that was already built.
	ErrBuilderConsumed = errors.New("route builder already built")
)

// PatternError reports a route whose pattern cannot be compiled.
type PatternError struct {
	Route  Route
	Reason string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q for %s: %s", e.Route.Path, e.Route.Method, e.Reason)
}

// Is reports whether target is ErrInvalidPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

func newPatternError(route Route, format string, args ...any) *PatternError {
	return &PatternError{Route: route, Reason: fmt.Sprintf(format, args...)}
}
