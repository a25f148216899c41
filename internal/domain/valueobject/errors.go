package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks every rejection of caller-supplied values.
var ErrInvalidInput = errors.New("invalid input")

// Invalid formats a message that wraps ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
