package params

import (
	"fmt"
	"strings"

	"github.com/solatis/mwsfba/internal/types"
)

// UnknownFieldError reports an assignment to a field the action does not declare.
type UnknownFieldError struct {
	Action string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", e.Action, e.Field, types.ErrUnknownField)
}

func (e *UnknownFieldError) Unwrap() error { return types.ErrUnknownField }

// MissingRequiredFieldError names the first required field without a value.
type MissingRequiredFieldError struct {
	Action string
	Field  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", e.Action, e.Field, types.ErrMissingRequiredField)
}

func (e *MissingRequiredFieldError) Unwrap() error { return types.ErrMissingRequiredField }

// InvalidEnumValueError carries the rejected value and the allowed set.
// Field is empty when the enum was validated outside a request.
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	prefix := ""
	if e.Field != "" {
		prefix = fmt.Sprintf("field %q: ", e.Field)
	}
	return fmt.Sprintf("%s%v %q (allowed: %s)", prefix, types.ErrInvalidEnumValue, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnumValueError) Unwrap() error { return types.ErrInvalidEnumValue }

// InvalidTimestampError carries the value that could not be read as a time.
type InvalidTimestampError struct {
	Field string
	Value any
}

func (e *InvalidTimestampError) Error() string {
	prefix := ""
	if e.Field != "" {
		prefix = fmt.Sprintf("field %q: ", e.Field)
	}
	return fmt.Sprintf("%s%v: %v (%T)", prefix, types.ErrInvalidTimestamp, e.Value, e.Value)
}

func (e *InvalidTimestampError) Unwrap() error { return types.ErrInvalidTimestamp }

// InvalidComplexValueError reports a complex field assigned something other
// than a *ComplexList.
type InvalidComplexValueError struct {
	Field string
	Value any
}

func (e *InvalidComplexValueError) Error() string {
	return fmt.Sprintf("field %q: %v: got %T", e.Field, types.ErrInvalidComplexValue, e.Value)
}

func (e *InvalidComplexValueError) Unwrap() error { return types.ErrInvalidComplexValue }

// withField attaches a field name to enum and timestamp errors raised by
// field-agnostic coercion helpers.
func withField(err error, field string) error {
	switch e := err.(type) {
	case *InvalidEnumValueError:
		if e.Field == "" {
			cp := *e
			cp.Field = field
			return &cp
		}
	case *InvalidTimestampError:
		if e.Field == "" {
			cp := *e
			cp.Field = field
			return &cp
		}
	}
	return err
}
