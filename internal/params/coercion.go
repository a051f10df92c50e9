// internal/params/coercion.go
package params

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/solatis/mwsfba/internal/types"
)

/*
 * Type coercion from caller values to wire strings.
 *
 * Four kinds (Plain, Timestamp, Enum, Complex). Plain, Timestamp and Enum
 * values coerce to a single string; lists of those kinds expand to indexed
 * keys with per-element coercion. Complex values flatten themselves.
 *
 * Key distinction: nil means "not assigned" and never reaches the wire.
 * A value that is present but cannot be represented is an error, never a
 * best-effort string such as "<nil>" or "Invalid Date".
 *
 * Kind modes:
 *   - Plain: strings, numbers, booleans, Stringers; time.Time uses Timestamp
 *   - Timestamp: strict, parsed then re-rendered as UTC ISO-8601
 *   - Enum: strict, Plain rendering then exact membership check
 *   - Complex: *ComplexList only, flattened under its own prefix
 */

// Kind selects how a field's value is coerced and emitted.
type Kind int

const (
	KindPlain Kind = iota
	KindTimestamp
	KindEnum
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindTimestamp:
		return "timestamp"
	case KindEnum:
		return "enum"
	case KindComplex:
		return "complex"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// TimestampLayout is the emitted form: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// timestampInputLayouts are tried in order for string input.
var timestampInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// CoercePlain renders a scalar as its wire string.
// Returns ErrCoercionFailed for nil and for composite values.
func CoercePlain(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", types.ErrCoercionFailed
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time, *time.Time:
		return CoerceTimestamp(v)
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %T has no wire representation", types.ErrCoercionFailed, value)
	}
}

// CoerceTimestamp parses a date/time and renders it in TimestampLayout.
// Accepts time.Time, *time.Time, integer Unix milliseconds, and strings in
// the layouts listed in timestampInputLayouts. Strings without a zone are UTC.
func CoerceTimestamp(value any) (string, error) {
	t, ok := toTime(value)
	if !ok || t.IsZero() {
		return "", &InvalidTimestampError{Value: value}
	}
	return t.UTC().Format(TimestampLayout), nil
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case int64:
		return time.UnixMilli(v), true
	case int:
		return time.UnixMilli(int64(v)), true
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return parseTime(v.String())
		}
		return time.UnixMilli(ms), true
	case string:
		return parseTime(v)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceScalar renders one value of a non-complex kind.
func coerceScalar(value any, kind Kind, enum *Enum) (string, error) {
	switch kind {
	case KindPlain:
		return CoercePlain(value)
	case KindTimestamp:
		return CoerceTimestamp(value)
	case KindEnum:
		s, err := CoercePlain(value)
		if err != nil {
			return "", err
		}
		return enum.Validate(s)
	default:
		return "", fmt.Errorf("%w: %v is not a scalar kind", types.ErrCoercionFailed, kind)
	}
}

// listElements unpacks any slice or array into its elements.
// Reports false for non-list values.
func listElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []time.Time:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out, true
	case string, nil:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// expandList emits path.1..path.N in sequence order.
// nil elements are skipped without consuming an index so the emitted
// indices stay contiguous.
func expandList(path string, elems []any, kind Kind, enum *Enum, out types.Params) error {
	if len(elems) > types.MaxListLength {
		return types.ErrListTooLong
	}
	i := 0
	for _, elem := range elems {
		if elem == nil {
			continue
		}
		s, err := coerceScalar(elem, kind, enum)
		if err != nil {
			return err
		}
		i++
		out[indexed(path, i)] = s
	}
	return nil
}
