package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArgument marks a required value that was not supplied.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidArgument marks a value outside its domain or pointing the wrong way.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError names the offending quantity and why it was rejected.
type ArgumentError struct {
	Kind   error
	Name   string
	Value  float64
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Kind == ErrMissingArgument {
		return fmt.Sprintf("%v: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%v: %s = %g: %s", e.Kind, e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

// Missing builds an ErrMissingArgument error for name.
func Missing(name string) error {
	return &ArgumentError{Kind: ErrMissingArgument, Name: name}
}

// Invalid builds an ErrInvalidArgument error; the reason is formatted from format and args.
func Invalid(name string, value float64, format string, args ...interface{}) error {
	return &ArgumentError{Kind: ErrInvalidArgument, Name: name, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// checkRange rejects NaN and values outside [min, max].
func checkRange(name string, value, min, max float64) error {
	if value != value {
		return Invalid(name, value, "not a number")
	}
	if value < min || value > max {
		return Invalid(name, value, "outside [%g, %g]", min, max)
	}
	return nil
}
