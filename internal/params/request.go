// Package params implements the MWS query parameter encoding engine:
// field schemas, value coercion, and flattening of lists and complex lists
// into indexed wire keys.
//
// The engine is pure. It performs no I/O, holds no process-wide state and
// never blocks. Schemas and Enums are immutable and shareable; a Request and
// the ComplexLists attached to it belong to the caller that built them.
package params

import (
	"fmt"

	"github.com/solatis/mwsfba/internal/types"
)

// Action is the static metadata of one API call.
type Action struct {
	Name    string  // wire Action value
	Group   string  // catalog grouping, e.g. "inbound"
	Path    string  // endpoint path, e.g. "/FulfillmentInboundShipment/2010-10-01"
	Version string  // wire Version value
	Schema  *Schema // compiled field table
}

// Request collects values for one call. Build one per call, populate it,
// finalize it, then discard it.
type Request struct {
	action *Action
	values map[string]any
}

// NewRequest returns an empty request for action.
func NewRequest(action *Action) *Request {
	return &Request{
		action: action,
		values: make(map[string]any),
	}
}

// Action returns the wire action name.
func (r *Request) Action() string { return r.action.Name }

// Group returns the catalog group.
func (r *Request) Group() string { return r.action.Group }

// Path returns the endpoint path.
func (r *Request) Path() string { return r.action.Path }

// Version returns the API version.
func (r *Request) Version() string { return r.action.Version }

// Schema returns the compiled field table.
func (r *Request) Schema() *Schema { return r.action.Schema }

// Assign sets a field value. Only existence is checked here; coercion and
// validation happen in Finalize. Assigning nil clears the field.
func (r *Request) Assign(field string, value any) error {
	if _, ok := r.action.Schema.Definition(field); !ok {
		return &UnknownFieldError{Action: r.action.Name, Field: field}
	}
	if value == nil {
		delete(r.values, field)
		return nil
	}
	r.values[field] = value
	return nil
}

// Complex builds a fresh list from the field's constructor and assigns it.
// The caller populates the returned list with Add.
func (r *Request) Complex(field string) (*ComplexList, error) {
	def, ok := r.action.Schema.Definition(field)
	if !ok {
		return nil, &UnknownFieldError{Action: r.action.Name, Field: field}
	}
	if def.Kind != KindComplex {
		return nil, fmt.Errorf("%s: field %q is %v, not complex", r.action.Name, field, def.Kind)
	}
	l := def.Construct()
	r.values[field] = l
	return l, nil
}

// Assigned returns the current value of field.
func (r *Request) Assigned(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Finalize validates every assigned value and flattens the request into wire
// parameters, Action and Version included. It does not modify the request,
// so calling it twice yields the same result. On error nothing is returned.
func (r *Request) Finalize() (types.Params, error) {
	schema := r.action.Schema

	for _, field := range schema.Required() {
		if !r.present(field) {
			return nil, &MissingRequiredFieldError{Action: r.action.Name, Field: field}
		}
	}

	out := make(types.Params)
	for _, field := range schema.Fields() {
		value, ok := r.values[field]
		if !ok {
			continue
		}
		def, _ := schema.Definition(field)

		emitted, err := flattenField(field, def, value)
		if err != nil {
			return nil, err
		}
		if err := merge(out, emitted, field); err != nil {
			return nil, err
		}
	}

	meta := types.Params{
		types.KeyAction:  r.action.Name,
		types.KeyVersion: r.action.Version,
	}
	if err := merge(out, meta, "(metadata)"); err != nil {
		return nil, err
	}

	return out, nil
}

// present reports whether field holds a value that would emit at least one key.
func (r *Request) present(field string) bool {
	value, ok := r.values[field]
	if !ok || value == nil {
		return false
	}
	def, _ := r.action.Schema.Definition(field)

	if def.Kind == KindComplex {
		if l, ok := value.(*ComplexList); ok {
			return l != nil && l.Len() > 0
		}
		// Wrong type is reported by flattenField with the offending value
		return true
	}
	if def.List {
		elems, ok := listElements(value)
		if !ok {
			return true
		}
		for _, e := range elems {
			if e != nil {
				return true
			}
		}
		return false
	}
	return true
}

// flattenField dispatches on kind. Every Kind is handled; an unknown kind
// cannot pass Compile.
func flattenField(field string, def Definition, value any) (types.Params, error) {
	out := make(types.Params)

	switch def.Kind {
	case KindComplex:
		l, ok := value.(*ComplexList)
		if !ok || l == nil {
			return nil, &InvalidComplexValueError{Field: field, Value: value}
		}
		flat, err := l.Flatten()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		return flat, nil

	case KindPlain, KindTimestamp, KindEnum:
		if def.List {
			elems, ok := listElements(value)
			if !ok {
				// A lone scalar on a list field is a one-element list
				elems = []any{value}
			}
			if err := expandList(def.WirePath, elems, def.Kind, def.Enum, out); err != nil {
				return nil, fieldError(field, err)
			}
			return out, nil
		}
		s, err := coerceScalar(value, def.Kind, def.Enum)
		if err != nil {
			return nil, fieldError(field, err)
		}
		out[def.WirePath] = s
		return out, nil

	default:
		return nil, fmt.Errorf("field %q: %w: unknown kind %v", field, types.ErrCoercionFailed, def.Kind)
	}
}

func fieldError(field string, err error) error {
	switch err.(type) {
	case *InvalidEnumValueError, *InvalidTimestampError:
		return withField(err, field)
	}
	return fmt.Errorf("field %q: %w", field, err)
}

// merge copies src into dst, failing on any key dst already holds.
func merge(dst, src types.Params, owner string) error {
	for k, v := range src {
		if _, dup := dst[k]; dup {
			return fmt.Errorf("%s: key %q: %w", owner, k, types.ErrWireKeyCollision)
		}
		dst[k] = v
	}
	return nil
}
