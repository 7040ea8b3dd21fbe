package planner

import (
	"errors"
	"fmt"
)

// ErrUnknownSource is returned when the trip origin is not a supported city.
var ErrUnknownSource = errors.New("source city not supported")

// UnknownSourceError carries the rejected origin.
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("%v: %q, please choose a major Indian city", ErrUnknownSource, e.Source)
}

func (e *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}
