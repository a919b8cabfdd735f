package entry

import (
	"errors"
	"fmt"
)

// Line-level decode errors, checked in this order.
var (
	ErrMissingField     = errors.New("missing field")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidVerb      = errors.New("invalid verb")
)

// Parameter errors.
var (
	ErrUnknownParameterKey = errors.New("unknown parameter key")
	ErrParameterNotAllowed = errors.New("parameter not allowed")
	ErrInvalidText         = errors.New("invalid free text")
)

// ParamError reports a parameter segment that could not be decoded, keeping
// the key and the raw segment for the message.
type ParamError struct {
	Key     string
	Segment string
	Err     error
}

func (e *ParamError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("parameter %s: %v", e.Key, e.Err)
	}
	if e.Key == "" {
		return fmt.Sprintf("parameter %q: %v", e.Segment, e.Err)
	}
	return fmt.Sprintf("parameter %s (%q): %v", e.Key, e.Segment, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }
