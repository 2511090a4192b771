package area

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when a reduction is asked to work on
	// an empty sample sequence.
	ErrInsufficientData = errors.New("no samples were collected")

	// ErrInvalidScreenProfile is returned when a screen dimension is zero or
	// negative and can not be divided by.
	ErrInvalidScreenProfile = errors.New("invalid screen profile")
)

// InvalidInputError reports an operator-entered value that is non-numeric
// or out of range.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NewInvalidInputError builds an InvalidInputError.
func NewInvalidInputError(field, value, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}

// InvalidScreenProfileError carries the rejected profile. It unwraps to
// ErrInvalidScreenProfile.
type InvalidScreenProfileError struct {
	Screen ScreenProfile
}

func (e *InvalidScreenProfileError) Error() string {
	return fmt.Sprintf("%v: %dx%d px, both dimensions must be positive", ErrInvalidScreenProfile, e.Screen.WidthPx, e.Screen.HeightPx)
}

func (e *InvalidScreenProfileError) Unwrap() error {
	return ErrInvalidScreenProfile
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
