package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedArgument is matched by every ArgError.
	ErrMalformedArgument = errors.New("malformed argument")
	// ErrUnreadableResource is matched by every StylesheetError.
	ErrUnreadableResource = errors.New("unreadable resource")
)

// ArgError reports a flag value that does not convert to the flag's type.
type ArgError struct {
	Option string
	Value  string
	Err    error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("error parsing option: %s (%v)", e.Option, e.Err)
}

func (e *ArgError) Unwrap() []error {
	return []error{ErrMalformedArgument, e.Err}
}

// StylesheetError reports a user stylesheet that could not be opened or read.
type StylesheetError struct {
	Path string
	Op   string
	Err  error
}

func (e *StylesheetError) Error() string {
	return fmt.Sprintf("couldn't %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StylesheetError) Unwrap() []error {
	return []error{ErrUnreadableResource, e.Err}
}
