package models

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a referenced column is absent.
var ErrColumnNotFound = errors.New("column not found")

// ParseError reports a cell that could not be converted.
type ParseError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s at row %d (%q): %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
