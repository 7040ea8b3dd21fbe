package crowd

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every validation error of the crowd model and
// the route planner. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputf builds an error wrapping ErrInvalidInput.
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

