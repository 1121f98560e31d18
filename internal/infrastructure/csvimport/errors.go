package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes
const (
	ErrCodeEmptyFile       = "IMPORT_EMPTY_FILE"
	ErrCodeInvalidEncoding = "IMPORT_INVALID_ENCODING"
	ErrCodeMissingHeader   = "IMPORT_MISSING_HEADER"
	ErrCodeMalformedRow    = "IMPORT_MALFORMED_ROW"
	ErrCodeRequiredField   = "IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidValue    = "IMPORT_INVALID_VALUE"
	ErrCodeDuplicateInFile = "IMPORT_DUPLICATE_IN_FILE"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// MissingHeadersError reports required columns absent from the header row
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// RowError represents a validation error in a specific data row.
// Row numbers are 1-indexed counting the header as row 1.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}
