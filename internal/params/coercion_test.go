package params

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/solatis/mwsfba/internal/types"
)

type sku string

func (s sku) String() string { return "SKU-" + string(s) }

func TestCoercePlain(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr error
	}{
		{name: "string passthrough", value: "hello", want: "hello"},
		{name: "empty string passthrough", value: "", want: ""},
		{name: "int", value: 5, want: "5"},
		{name: "negative int64", value: int64(-42), want: "-42"},
		{name: "uint8", value: uint8(7), want: "7"},
		{name: "float64", value: 19.99, want: "19.99"},
		{name: "float64 integral", value: 3.0, want: "3"},
		{name: "float32", value: float32(0.5), want: "0.5"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false", value: false, want: "false"},
		{name: "json number", value: json.Number("12"), want: "12"},
		{name: "stringer", value: sku("1"), want: "SKU-1"},
		{name: "time renders as timestamp", value: time.Date(2020, 2, 3, 4, 5, 6, 7000000, time.UTC), want: "2020-02-03T04:05:06.007Z"},
		{name: "nil fails", value: nil, wantErr: types.ErrCoercionFailed},
		{name: "map fails", value: map[string]any{"a": 1}, wantErr: types.ErrCoercionFailed},
		{name: "slice fails", value: []string{"a"}, wantErr: types.ErrCoercionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoercePlain(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CoercePlain() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoercePlain() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("CoercePlain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoerceTimestamp(t *testing.T) {
	ts := time.Date(2015, 6, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "time.Time", value: ts, want: "2015-06-01T12:30:00.000Z"},
		{name: "pointer", value: &ts, want: "2015-06-01T12:30:00.000Z"},
		{name: "non-UTC zone normalized", value: ts.In(time.FixedZone("PDT", -7*3600)), want: "2015-06-01T12:30:00.000Z"},
		{name: "RFC3339 string", value: "2015-06-01T12:30:00Z", want: "2015-06-01T12:30:00.000Z"},
		{name: "RFC3339 with millis", value: "2015-06-01T12:30:00.123Z", want: "2015-06-01T12:30:00.123Z"},
		{name: "offset string", value: "2015-06-01T14:30:00+02:00", want: "2015-06-01T12:30:00.000Z"},
		{name: "zoneless string is UTC", value: "2015-06-01T12:30:00", want: "2015-06-01T12:30:00.000Z"},
		{name: "space separated", value: "2015-06-01 12:30:00", want: "2015-06-01T12:30:00.000Z"},
		{name: "date only", value: "2015-06-01", want: "2015-06-01T00:00:00.000Z"},
		{name: "RFC1123", value: "Mon, 01 Jun 2015 12:30:00 GMT", want: "2015-06-01T12:30:00.000Z"},
		{name: "unix millis int64", value: ts.UnixMilli(), want: "2015-06-01T12:30:00.000Z"},
		{name: "unix millis json number", value: json.Number("1433161800000"), want: "2015-06-01T12:30:00.000Z"},
		{name: "padded string", value: "  2015-06-01  ", want: "2015-06-01T00:00:00.000Z"},
		{name: "garbage string", value: "yesterday", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
		{name: "impossible date", value: "2015-02-30", wantErr: true},
		{name: "zero time", value: time.Time{}, wantErr: true},
		{name: "nil pointer", value: (*time.Time)(nil), wantErr: true},
		{name: "bool", value: true, wantErr: true},
		{name: "float", value: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceTimestamp(tt.value)
			if tt.wantErr {
				var invalid *InvalidTimestampError
				if !errors.As(err, &invalid) {
					t.Fatalf("CoerceTimestamp() error = %v, want InvalidTimestampError", err)
				}
				if !errors.Is(err, types.ErrInvalidTimestamp) {
					t.Errorf("errors.Is(ErrInvalidTimestamp) = false")
				}
				if got != "" {
					t.Errorf("CoerceTimestamp() = %q on error, want empty", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceTimestamp() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("CoerceTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandList_SkipsNilKeepsIndicesContiguous(t *testing.T) {
	out := make(types.Params)
	if err := expandList("SellerSkus.member", []any{"A", nil, "C"}, KindPlain, nil, out); err != nil {
		t.Fatalf("expandList() error = %v", err)
	}
	if len(out) != 2 || out["SellerSkus.member.1"] != "A" || out["SellerSkus.member.2"] != "C" {
		t.Errorf("expandList() = %v", out)
	}
}

func TestExpandList_TooLong(t *testing.T) {
	elems := make([]any, types.MaxListLength+1)
	for i := range elems {
		elems[i] = "x"
	}
	err := expandList("P", elems, KindPlain, nil, make(types.Params))
	if !errors.Is(err, types.ErrListTooLong) {
		t.Errorf("expandList() error = %v, want ErrListTooLong", err)
	}
}

func TestListElements(t *testing.T) {
	if _, ok := listElements("abc"); ok {
		t.Error("string treated as list")
	}
	got, ok := listElements([]int{1, 2, 3})
	if !ok || len(got) != 3 || got[2] != 3 {
		t.Errorf("listElements([]int) = %v, %v", got, ok)
	}
	got, ok = listElements([2]string{"a", "b"})
	if !ok || len(got) != 2 {
		t.Errorf("listElements([2]string) = %v, %v", got, ok)
	}
}

func TestEnum(t *testing.T) {
	e := NewEnum("FillOrKill", "FillAll", "FillAllAvailable", "FillAll")

	if got := e.Values(); len(got) != 3 || got[0] != "FillOrKill" || got[2] != "FillAllAvailable" {
		t.Errorf("Values() = %v", got)
	}

	v, err := e.Validate("FillAll")
	if err != nil || v != "FillAll" {
		t.Errorf("Validate(FillAll) = %q, %v", v, err)
	}

	for _, bad := range []string{"fillall", "FillAll ", "", "Other"} {
		_, err := e.Validate(bad)
		var invalid *InvalidEnumValueError
		if !errors.As(err, &invalid) {
			t.Errorf("Validate(%q) error = %v, want InvalidEnumValueError", bad, err)
			continue
		}
		if invalid.Value != bad || len(invalid.Allowed) != 3 {
			t.Errorf("Validate(%q) error fields = %+v", bad, invalid)
		}
	}

	if !e.Contains("FillOrKill") || e.Contains("fillorkill") {
		t.Error("Contains() mismatch")
	}
}
