// internal/params/definition.go
package params

import (
	"fmt"
	"sort"

	"github.com/solatis/mwsfba/internal/types"
)

/*
 * Schema compilation and validation.
 *
 * Compiles an action's field table into an immutable Schema. All checks that
 * depend only on static data run here, once, so request building and
 * finalizing only deal with caller values.
 *
 * Compilation workflow:
 *   1. Validate each wire path (non-empty segments, depth limit)
 *   2. Validate kind-specific metadata (Enum needs an Enum, Complex needs Construct)
 *   3. Reject reserved metadata keys (Action, Version)
 *   4. Reject duplicate wire paths, complex prefixes included
 *
 * Complex fields emit under the prefix of the list their Construct returns,
 * not under WirePath; the constructed prefix is what takes part in the
 * duplicate check.
 */

// Definition is the static metadata for one logical field.
type Definition struct {
	WirePath  string              // wire name, or logical name for complex fields
	Required  bool                // absence fails finalize
	Kind      Kind                // coercion mode
	List      bool                // value is a sequence expanded to WirePath.N
	Enum      *Enum               // allowed values for KindEnum
	Construct func() *ComplexList // fresh list factory for KindComplex
}

// Schema is a compiled, read-only field table. Safe for concurrent use.
type Schema struct {
	action string
	defs   map[string]Definition
	fields []string // sorted
}

// Compile validates defs and returns an immutable Schema for action.
func Compile(action string, defs map[string]Definition) (*Schema, error) {
	s := &Schema{
		action: action,
		defs:   make(map[string]Definition, len(defs)),
		fields: make([]string, 0, len(defs)),
	}

	for name := range defs {
		s.fields = append(s.fields, name)
	}
	sort.Strings(s.fields)

	claimed := map[string]string{
		types.KeyAction:  "(metadata)",
		types.KeyVersion: "(metadata)",
	}

	for _, name := range s.fields {
		def := defs[name]
		if err := compileDefinition(action, name, &def, claimed); err != nil {
			return nil, err
		}
		s.defs[name] = def
	}

	return s, nil
}

// compileDefinition validates one field and claims its emitted wire path.
func compileDefinition(action, name string, def *Definition, claimed map[string]string) error {
	path := def.WirePath

	switch def.Kind {
	case KindPlain, KindTimestamp:
	case KindEnum:
		if def.Enum == nil {
			return fmt.Errorf("%s.%s: enum field has no allowed values", action, name)
		}
	case KindComplex:
		if def.Construct == nil {
			return fmt.Errorf("%s.%s: complex field has no constructor", action, name)
		}
		if def.List {
			return fmt.Errorf("%s.%s: complex fields are already repeated; list flag not allowed", action, name)
		}
		l := def.Construct()
		if l == nil {
			return fmt.Errorf("%s.%s: constructor returned nil", action, name)
		}
		path = l.Prefix()
	default:
		return fmt.Errorf("%s.%s: unknown kind %v", action, name, def.Kind)
	}

	if _, err := ParseWirePath(path); err != nil {
		return fmt.Errorf("%s.%s: %q: %w", action, name, path, err)
	}

	if other, ok := claimed[path]; ok {
		return fmt.Errorf("%s.%s: %q already used by %s: %w", action, name, path, other, types.ErrDuplicateWirePath)
	}
	claimed[path] = name
	return nil
}

// Action returns the action name the schema was compiled for.
func (s *Schema) Action() string { return s.action }

// Fields returns the declared field names in sorted order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Definition returns the definition for field.
func (s *Schema) Definition(field string) (Definition, bool) {
	def, ok := s.defs[field]
	return def, ok
}

// Required returns the required field names in sorted order.
func (s *Schema) Required() []string {
	var out []string
	for _, name := range s.fields {
		if s.defs[name].Required {
			out = append(out, name)
		}
	}
	return out
}
