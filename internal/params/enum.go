package params

// Enum is a closed set of allowed wire values. It holds no per-request state,
// so one instance can back any number of fields and requests concurrently.
type Enum struct {
	values  []string
	allowed map[string]struct{}
}

// NewEnum builds an enum from its allowed values. Declaration order is kept
// for Values(); duplicates collapse.
func NewEnum(values ...string) *Enum {
	e := &Enum{allowed: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if _, dup := e.allowed[v]; dup {
			continue
		}
		e.allowed[v] = struct{}{}
		e.values = append(e.values, v)
	}
	return e
}

// Validate returns value unchanged if it is a member. Matching is exact:
// no case folding, no trimming.
func (e *Enum) Validate(value string) (string, error) {
	if _, ok := e.allowed[value]; !ok {
		return "", &InvalidEnumValueError{Value: value, Allowed: e.Values()}
	}
	return value, nil
}

// Contains reports membership without allocating an error.
func (e *Enum) Contains(value string) bool {
	_, ok := e.allowed[value]
	return ok
}

// Values returns a copy of the allowed values in declaration order.
func (e *Enum) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}
