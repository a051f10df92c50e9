package params

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/solatis/mwsfba/internal/types"
)

func TestComplexList_FlattenOrder(t *testing.T) {
	l := NewComplexList("Items.member").
		Add(Member{"SellerSKU": "A", "Quantity": 1}).
		Add(Member{"SellerSKU": "B", "Quantity": 2}).
		Add(Member{"SellerSKU": "C", "Quantity": 3})

	got, err := l.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	want := types.Params{
		"Items.member.1.SellerSKU": "A",
		"Items.member.1.Quantity":  "1",
		"Items.member.2.SellerSKU": "B",
		"Items.member.2.Quantity":  "2",
		"Items.member.3.SellerSKU": "C",
		"Items.member.3.Quantity":  "3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestComplexList_OmittedSubField(t *testing.T) {
	l := NewComplexList("InboundShipmentItems.member").
		Add(Member{"SellerSKU": "A", "QuantityShipped": 10, "QuantityInCase": 5}).
		Add(Member{"SellerSKU": "B", "QuantityShipped": 4, "QuantityInCase": nil}).
		Add(Member{"SellerSKU": "C", "QuantityShipped": 1})

	got, err := l.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if got["InboundShipmentItems.member.1.QuantityInCase"] != "5" {
		t.Errorf("member 1 lost QuantityInCase: %v", got)
	}
	for _, k := range []string{"InboundShipmentItems.member.2.QuantityInCase", "InboundShipmentItems.member.3.QuantityInCase"} {
		if _, ok := got[k]; ok {
			t.Errorf("omitted sub-field emitted: %s", k)
		}
	}
	if len(got) != 7 {
		t.Errorf("len(Flatten()) = %d, want 7", len(got))
	}
}

func TestComplexList_DottedSubFields(t *testing.T) {
	l := NewComplexList("TransportDetails.PartneredSmallParcelData.PackageList.member").
		Add(Member{"Weight.Unit": "pounds", "Weight.Value": 12.5})

	got, err := l.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if got["TransportDetails.PartneredSmallParcelData.PackageList.member.1.Weight.Value"] != "12.5" {
		t.Errorf("Flatten() = %v", got)
	}
}

func TestComplexList_Empty(t *testing.T) {
	got, err := NewComplexList("Items.member").Flatten()
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Flatten() = %v, want empty", got)
	}
}

func TestComplexList_AddCopiesMember(t *testing.T) {
	m := Member{"SellerSKU": "A"}
	l := NewComplexList("Items.member").Add(m)
	m["SellerSKU"] = "mutated"

	got, _ := l.Flatten()
	if got["Items.member.1.SellerSKU"] != "A" {
		t.Errorf("caller mutation leaked into list: %v", got)
	}
}

func TestComplexList_FlattenAt(t *testing.T) {
	l := NewComplexList("Items.member").Add(Member{"SellerSKU": "A"})
	got, err := l.FlattenAt("Other.member")
	if err != nil {
		t.Fatalf("FlattenAt() error = %v", err)
	}
	if got["Other.member.1.SellerSKU"] != "A" || len(got) != 1 {
		t.Errorf("FlattenAt() = %v", got)
	}
}

func TestComplexList_UncoercibleSubField(t *testing.T) {
	l := NewComplexList("Items.member").Add(Member{"SellerSKU": []string{"A"}})
	if _, err := l.Flatten(); err == nil {
		t.Error("Flatten() error = nil, want coercion error")
	}
}

// Property-based test: members keep insertion order and indices are 1..N
func TestComplexList_PropertyContiguousIndices(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("member i emits under prefix.i with its own values", prop.ForAll(
		func(skus []string) bool {
			l := NewComplexList("Items.member")
			for _, s := range skus {
				l.Add(Member{"SellerSKU": s})
			}
			flat, err := l.Flatten()
			if err != nil {
				return false
			}
			if len(flat) != len(skus) {
				return false
			}
			for i, s := range skus {
				if flat[fmt.Sprintf("Items.member.%d.SellerSKU", i+1)] != s {
					return false
				}
			}
			_, gap := flat[fmt.Sprintf("Items.member.%d.SellerSKU", len(skus)+1)]
			return !gap
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property-based test: omitting a sub-field affects only its own member
func TestComplexList_PropertyOmissionIsLocal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("nil sub-field emits nothing for that member only", prop.ForAll(
		func(n int, omit int) bool {
			omit = omit % n
			l := NewComplexList("Items.member")
			for i := 0; i < n; i++ {
				m := Member{"SellerSKU": fmt.Sprintf("SKU%d", i), "QuantityInCase": i + 1}
				if i == omit {
					m["QuantityInCase"] = nil
				}
				l.Add(m)
			}
			flat, err := l.Flatten()
			if err != nil {
				return false
			}
			for i := 0; i < n; i++ {
				_, has := flat[fmt.Sprintf("Items.member.%d.QuantityInCase", i+1)]
				if has == (i == omit) {
					return false
				}
				if _, ok := flat[fmt.Sprintf("Items.member.%d.SellerSKU", i+1)]; !ok {
					return false
				}
			}
			return len(flat) == 2*n-1
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// Property-based test: plain list expansion is 1-based and order preserving
func TestExpandList_PropertyOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("element i emits under path.i", prop.ForAll(
		func(ids []string) bool {
			elems := make([]any, len(ids))
			for i, id := range ids {
				elems[i] = id
			}
			out := make(types.Params)
			if err := expandList("ShipmentIdList.member", elems, KindPlain, nil, out); err != nil {
				return false
			}
			if len(out) != len(ids) {
				return false
			}
			for i, id := range ids {
				if out[fmt.Sprintf("ShipmentIdList.member.%d", i+1)] != id {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
