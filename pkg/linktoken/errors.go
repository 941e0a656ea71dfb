package linktoken

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken covers malformed segments, a wrong secret, a failed
	// authentication tag and non-JSON plaintext. The wrapped message carries
	// the cause for logs only.
	ErrInvalidToken = errors.New("invalid token")
	// ErrLinkExpired is returned when exp is missing or not in the future
	ErrLinkExpired = errors.New("link expired")
	// ErrInvalidPhase is returned when the token authorizes a different step
	ErrInvalidPhase = errors.New("invalid phase")
)

// ValidationError names the first required business field that is missing
// or malformed.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

// PhaseError describes a phase mismatch and unwraps to ErrInvalidPhase.
type PhaseError struct {
	Expected PhaseSet
	Actual   Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("invalid phase: expected %s, got %s", e.Expected, e.Actual)
}

func (e *PhaseError) Unwrap() error {
	return ErrInvalidPhase
}

func invalid(cause string) error {
	return fmt.Errorf("%w: %s", ErrInvalidToken, cause)
}
