package model

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the price feed yields no daily records.
var ErrEmptyInput = errors.New("no daily records returned")

// ParseError reports a malformed date key or price/volume field.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
