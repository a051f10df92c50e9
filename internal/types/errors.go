package types

import "errors"

// Sentinel errors for parameter encoding. Typed errors in internal/params
// unwrap to these so callers can match with errors.Is.
var (
	// ErrUnknownField indicates an assignment to a field absent from the action schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingRequiredField indicates a required field has no value at finalize time.
	// Empty lists and complex lists with zero members count as missing.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidEnumValue indicates a value outside an enum's allowed set.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrInvalidTimestamp indicates a value that cannot be read as a date/time.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidComplexValue indicates a complex field holding something other than a complex list.
	ErrInvalidComplexValue = errors.New("invalid complex value")

	// ErrCoercionFailed indicates a value has no wire string representation.
	ErrCoercionFailed = errors.New("type coercion failed")

	// ErrInvalidWirePath indicates a malformed wire path in a schema definition.
	ErrInvalidWirePath = errors.New("invalid wire path")

	// ErrPathTooDeep indicates a wire path exceeds MaxPathDepth segments.
	ErrPathTooDeep = errors.New("wire path exceeds maximum depth")

	// ErrDuplicateWirePath indicates two schema fields declare the same wire path.
	ErrDuplicateWirePath = errors.New("duplicate wire path")

	// ErrWireKeyCollision indicates two emitted parameters share a wire key.
	ErrWireKeyCollision = errors.New("wire key collision")

	// ErrListTooLong indicates a list or complex list exceeds MaxListLength.
	ErrListTooLong = errors.New("list exceeds maximum length")

	// ErrUnknownAction indicates a group/action pair missing from the catalog.
	ErrUnknownAction = errors.New("unknown action")
)
