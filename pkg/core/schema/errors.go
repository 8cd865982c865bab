package schema

import (
	"fmt"
)

// ValidationError reports an invalid descriptor setting.
type ValidationError struct {
	Field   string
	Message string
	Value   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: '%s')",
		e.Field, e.Message, e.Value)
}

// ConversionError reports a value that cannot be interpreted as the target type.
type ConversionError struct {
	Field string
	From  SemanticType
	To    SemanticType
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v (%s) to %s", e.Value, e.From, e.To)
	if e.Field != "" {
		msg = fmt.Sprintf("field '%s': %s", e.Field, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ComparisonTypeMismatchError reports a comparison between incompatible types or values.
type ComparisonTypeMismatchError struct {
	Field string
	Left  SemanticType
	Right SemanticType
	Value any
}

func (e *ComparisonTypeMismatchError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("field '%s': %s descriptor cannot compare value of Go type %T",
			e.Field, e.Left, e.Value)
	}
	return fmt.Sprintf("field '%s': cannot compare %s with %s", e.Field, e.Left, e.Right)
}

// UnknownTypeError reports a registry lookup for an unrecognised type.
type UnknownTypeError struct {
	Code int
	Name string
}

func (e *UnknownTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown value type '%s'", e.Name)
	}
	return fmt.Sprintf("unknown value type code %d", e.Code)
}

// CursorExtractionError wraps a failure reading a column from a SQL cursor.
type CursorExtractionError struct {
	Column   int
	SQLType  SQLType
	TypeName string
	Err      error
}

func (e *CursorExtractionError) Error() string {
	return fmt.Sprintf("column %d (sql type %s, '%s'): %v", e.Column, e.SQLType, e.TypeName, e.Err)
}

func (e *CursorExtractionError) Unwrap() error { return e.Err }
