package converter

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input is not well-formed JSON (or YAML).
	ErrParse = errors.New("parse error")

	// ErrSchema indicates the document lacks a usable features array.
	ErrSchema = errors.New("schema error")

	// ErrGeometry indicates a polygonal geometry with malformed coordinates.
	ErrGeometry = errors.New("geometry error")

	// ErrIO indicates the source could not be read or the sink written.
	ErrIO = errors.New("i/o error")
)

// ParseError represents a failure to decode the input document.
type ParseError struct {
	// Offset is the byte offset of the syntax error (0 if unknown)
	Offset int64
	Cause  error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Offset > 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaError represents a document whose shape is not a feature collection.
type SchemaError struct {
	// Feature is the index of the offending feature, or -1 for the document itself
	Feature int
	Message string
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	if e.Feature >= 0 {
		return fmt.Sprintf("schema error: feature %d: %s", e.Feature, e.Message)
	}
	return "schema error: " + e.Message
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// GeometryError represents malformed coordinates in a Polygon or MultiPolygon.
type GeometryError struct {
	Type    string
	Feature int
	Cause   error
}

// Error returns a human-readable error message.
func (e *GeometryError) Error() string {
	msg := fmt.Sprintf("geometry error: feature %d", e.Feature)
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GeometryError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *GeometryError) Is(target error) bool { return target == ErrGeometry }

// IOError represents a failure to read the source or write the sink.
type IOError struct {
	// Op is "read", "create", "write" or "close"
	Op    string
	Path  string
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "i/o error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool { return target == ErrIO }
