// internal/params/complexlist.go
package params

import (
	"fmt"
	"sort"

	"github.com/solatis/mwsfba/internal/types"
)

/*
 * Complex lists: ordered, repeatable structured parameters.
 *
 * A ComplexList owns its wire prefix ("InboundShipmentItems.member") and an
 * ordered sequence of members. Flattening emits "{prefix}.{i}.{subField}"
 * with i 1-based in insertion order. Indices are assigned at flatten time
 * from the member position, so they are always contiguous.
 *
 * Optional sub-fields are expressed by omission: a nil value (or a missing
 * key) emits nothing for that member only. There is no null marker on the
 * wire.
 */

// Member is one element of a ComplexList: sub-field name to value.
// Sub-field names may themselves be dotted ("PerUnitDeclaredValue.Value").
type Member map[string]any

// ComplexList is exclusively owned by the call site that built it.
// It is not safe for concurrent mutation.
type ComplexList struct {
	prefix  string
	members []Member
}

// NewComplexList creates an empty list emitting under prefix.
func NewComplexList(prefix string) *ComplexList {
	return &ComplexList{prefix: prefix}
}

// Add appends one member and returns the list for chaining.
// The member map is copied; later changes by the caller are not observed.
func (l *ComplexList) Add(fields Member) *ComplexList {
	m := make(Member, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	l.members = append(l.members, m)
	return l
}

// Prefix returns the wire prefix members are emitted under.
func (l *ComplexList) Prefix() string { return l.prefix }

// Len returns the number of members.
func (l *ComplexList) Len() int { return len(l.members) }

// Flatten emits the list under its own prefix.
func (l *ComplexList) Flatten() (types.Params, error) {
	return l.FlattenAt(l.prefix)
}

// FlattenAt emits every member under prefix. An empty list yields an empty
// mapping. Sub-field values coerce with the plain rules (time.Time values
// render as timestamps).
func (l *ComplexList) FlattenAt(prefix string) (types.Params, error) {
	if len(l.members) > types.MaxListLength {
		return nil, types.ErrListTooLong
	}

	out := make(types.Params)
	for i, m := range l.members {
		if len(m) > types.MaxMemberFields {
			return nil, fmt.Errorf("%s member %d: %d sub-fields exceeds %d", prefix, i+1, len(m), types.MaxMemberFields)
		}
		base := indexed(prefix, i+1)

		// Sorted for deterministic error reporting; output is a map either way
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := m[k]
			if v == nil {
				continue
			}
			s, err := CoercePlain(v)
			if err != nil {
				return nil, fmt.Errorf("%s member %d sub-field %q: %w", prefix, i+1, k, err)
			}
			out[Join(base, k)] = s
		}
	}
	return out, nil
}
