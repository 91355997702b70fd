package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAutomaton is returned before any algorithm runs when the input breaks an Automaton invariant.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrInvalidStateReference is returned by Incremental when a Handle does not name one of its states.
	ErrInvalidStateReference = errors.New("invalid state reference")

	// ErrResourceExhausted is matched by errors that report an exceeded work limit.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// TooComplexToDeterminizeError is returned when subset construction would create more states than
// the caller's work limit allows.
type TooComplexToDeterminizeError struct {
	WorkLimit int
}

func (e *TooComplexToDeterminizeError) Error() string {
	return fmt.Sprintf("determinizing automaton would result in more than %d states", e.WorkLimit)
}

func (e *TooComplexToDeterminizeError) Unwrap() error {
	return ErrResourceExhausted
}
