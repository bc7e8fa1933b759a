package ot

import (
	"errors"
	"fmt"
)

// ErrTruncated is wrapped by every ParseError caused by a read beyond the
// end of a table.
var ErrTruncated = errors.New("read beyond table bounds")

// ErrUnknownFormat is wrapped by every ParseError caused by an unrecognized
// format number in a coverage, class definition, anchor or subtable header.
var ErrUnknownFormat = errors.New("unknown format")

// ParseError represents an error encountered while decoding a font table.
// A ParseError aborts decoding of the table it occured in.
type ParseError struct {
	Table   Tag    // The OpenType table where the error occurred (e.g., "GSUB", "GPOS")
	Section string // Structure within the table (e.g., "Coverage", "LookupList")
	Offset  int    // Byte position within the table
	Issue   string // Human-readable description of the issue
	Err     error  // ErrTruncated, ErrUnknownFormat or nil
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("OpenType font format: %s/%s at offset %d: %s", e.Table, e.Section, e.Offset, e.Issue)
}

// Unwrap makes ErrTruncated and ErrUnknownFormat available to errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func errTruncated(table Tag, section string, at int) *ParseError {
	return &ParseError{
		Table:   table,
		Section: section,
		Offset:  at,
		Issue:   ErrTruncated.Error(),
		Err:     ErrTruncated,
	}
}

func errFormat(table Tag, section string, at int, format uint16) *ParseError {
	return &ParseError{
		Table:   table,
		Section: section,
		Offset:  at,
		Issue:   fmt.Sprintf("unknown %s format %d", section, format),
		Err:     ErrUnknownFormat,
	}
}

func errInvalid(table Tag, section string, at int, issue string) *ParseError {
	return &ParseError{
		Table:   table,
		Section: section,
		Offset:  at,
		Issue:   issue,
	}
}
