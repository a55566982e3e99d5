package parser

import (
	"fmt"
	"io"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// Parser defines the interface for reading a department table export
type Parser interface {
	ParseDepartments(r io.Reader, filename string) (*ParseResult, error)
}

// ParseResult contains the parsed rows and any coercion warnings
type ParseResult struct {
	Rows     []ledger.DepartmentRow
	Warnings []string
}

// ValidationError represents a structural problem with the table
type ValidationError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column %s: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: failed to parse '%s': %v",
		e.Row, e.Column, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
