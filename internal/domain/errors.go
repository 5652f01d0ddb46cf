package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream failure")
	ErrValidation = errors.New("validation failure")
)

// GenerationError is returned when the AI provider fails or its output
// cannot be used. Raw holds the cleaned provider text, if any.
type GenerationError struct {
	Raw string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Raw == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\nResponse was: %s", e.Err, e.Raw)
}

func (e *GenerationError) Unwrap() []error {
	return []error{e.Err, ErrUpstream}
}
