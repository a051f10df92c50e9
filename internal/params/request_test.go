package params

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/solatis/mwsfba/internal/types"
)

func itemsList() *ComplexList { return NewComplexList("Items.member") }

func shipmentAction(t *testing.T) *Action {
	t.Helper()
	schema, err := Compile("CreateInboundShipment", map[string]Definition{
		"ShipmentId":  {WirePath: "ShipmentId", Required: true},
		"Items":       {WirePath: "Items", Required: true, Kind: KindComplex, Construct: itemsList},
		"ShipmentIds": {WirePath: "ShipmentIdList.member", List: true},
		"UpdatedAt":   {WirePath: "LastUpdatedAfter", Kind: KindTimestamp},
		"Speed":       {WirePath: "ShippingSpeedCategory", Kind: KindEnum, Enum: NewEnum("Standard", "Expedited", "Priority")},
		"Speeds":      {WirePath: "ShippingSpeedCategories.member", Kind: KindEnum, List: true, Enum: NewEnum("Standard", "Expedited", "Priority")},
		"Dates":       {WirePath: "Dates.member", Kind: KindTimestamp, List: true},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	return &Action{
		Name:    "CreateInboundShipment",
		Group:   "inbound",
		Path:    "/FulfillmentInboundShipment/2010-10-01",
		Version: "2010-10-01",
		Schema:  schema,
	}
}

func TestFinalize_ShipmentScenario(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	if err := req.Assign("ShipmentId", "FBA123"); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	items, err := req.Complex("Items")
	if err != nil {
		t.Fatalf("Complex() error = %v", err)
	}
	items.Add(Member{"SellerSKU": "SKU1", "Quantity": 5})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v, want nil", err)
	}

	want := types.Params{
		"Action":                   "CreateInboundShipment",
		"Version":                  "2010-10-01",
		"ShipmentId":               "FBA123",
		"Items.member.1.SellerSKU": "SKU1",
		"Items.member.1.Quantity":  "5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Finalize() = %v, want %v", got, want)
	}
}

func TestFinalize_ListExpansion(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA123")
	items, _ := req.Complex("Items")
	items.Add(Member{"SellerSKU": "SKU1"})
	req.Assign("ShipmentIds", []string{"A", "B"})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v, want nil", err)
	}
	if got["ShipmentIdList.member.1"] != "A" || got["ShipmentIdList.member.2"] != "B" {
		t.Errorf("list expansion = %v", got)
	}
	if _, ok := got["ShipmentIdList.member.3"]; ok {
		t.Errorf("unexpected third element")
	}
	if _, ok := got["ShipmentIdList.member"]; ok {
		t.Errorf("list emitted unindexed key")
	}
}

func TestFinalize_EmptyOptionalListEmitsNothing(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA123")
	items, _ := req.Complex("Items")
	items.Add(Member{"SellerSKU": "SKU1"})
	req.Assign("ShipmentIds", []string{})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v, want nil", err)
	}
	if len(got) != 4 {
		t.Errorf("len(Finalize()) = %d, want 4: %v", len(got), got)
	}
}

func TestFinalize_MissingRequired(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(r *Request)
		wantField string
	}{
		{
			name:      "plain field never assigned",
			setup:     func(r *Request) { c, _ := r.Complex("Items"); c.Add(Member{"SellerSKU": "X"}) },
			wantField: "ShipmentId",
		},
		{
			name:      "complex field never assigned",
			setup:     func(r *Request) { r.Assign("ShipmentId", "FBA1") },
			wantField: "Items",
		},
		{
			name: "complex field with zero members",
			setup: func(r *Request) {
				r.Assign("ShipmentId", "FBA1")
				r.Complex("Items")
			},
			wantField: "Items",
		},
		{
			name: "plain field cleared with nil",
			setup: func(r *Request) {
				r.Assign("ShipmentId", "FBA1")
				r.Assign("ShipmentId", nil)
				c, _ := r.Complex("Items")
				c.Add(Member{"SellerSKU": "X"})
			},
			wantField: "ShipmentId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(shipmentAction(t))
			tt.setup(req)

			got, err := req.Finalize()
			if got != nil {
				t.Errorf("Finalize() returned partial params %v", got)
			}
			var missing *MissingRequiredFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("Finalize() error = %v, want MissingRequiredFieldError", err)
			}
			if missing.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", missing.Field, tt.wantField)
			}
			if !errors.Is(err, types.ErrMissingRequiredField) {
				t.Errorf("errors.Is(ErrMissingRequiredField) = false")
			}
		})
	}
}

func TestFinalize_RequiredEmptyListIsMissing(t *testing.T) {
	schema, err := Compile("ListThings", map[string]Definition{
		"Ids": {WirePath: "IdList.member", List: true, Required: true},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	req := NewRequest(&Action{Name: "ListThings", Version: "2010-10-01", Schema: schema})
	req.Assign("Ids", []string{})

	_, err = req.Finalize()
	if !errors.Is(err, types.ErrMissingRequiredField) {
		t.Errorf("Finalize() error = %v, want ErrMissingRequiredField", err)
	}
}

func TestAssign_UnknownField(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	err := req.Assign("NoSuchField", "x")

	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("Assign() error = %v, want UnknownFieldError", err)
	}
	if unknown.Field != "NoSuchField" {
		t.Errorf("Field = %q, want NoSuchField", unknown.Field)
	}
	if !errors.Is(err, types.ErrUnknownField) {
		t.Errorf("errors.Is(ErrUnknownField) = false")
	}

	if _, err := req.Complex("NoSuchField"); !errors.Is(err, types.ErrUnknownField) {
		t.Errorf("Complex() error = %v, want ErrUnknownField", err)
	}
}

func TestFinalize_InvalidEnum(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{name: "scalar", field: "Speed", value: "Overnight"},
		{name: "case differs", field: "Speed", value: "standard"},
		{name: "list element", field: "Speeds", value: []string{"Standard", "Teleport"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(shipmentAction(t))
			req.Assign("ShipmentId", "FBA1")
			c, _ := req.Complex("Items")
			c.Add(Member{"SellerSKU": "X"})
			req.Assign(tt.field, tt.value)

			_, err := req.Finalize()
			var invalid *InvalidEnumValueError
			if !errors.As(err, &invalid) {
				t.Fatalf("Finalize() error = %v, want InvalidEnumValueError", err)
			}
			if invalid.Field != tt.field {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.field)
			}
		})
	}
}

func TestFinalize_EnumListValid(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA1")
	c, _ := req.Complex("Items")
	c.Add(Member{"SellerSKU": "X"})
	req.Assign("Speed", "Priority")
	req.Assign("Speeds", []any{"Standard", "Expedited"})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if got["ShippingSpeedCategory"] != "Priority" {
		t.Errorf("ShippingSpeedCategory = %q", got["ShippingSpeedCategory"])
	}
	if got["ShippingSpeedCategories.member.1"] != "Standard" || got["ShippingSpeedCategories.member.2"] != "Expedited" {
		t.Errorf("enum list = %v", got)
	}
}

func TestFinalize_Timestamps(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA1")
	c, _ := req.Complex("Items")
	c.Add(Member{"SellerSKU": "X"})
	req.Assign("UpdatedAt", "2024-03-01T10:00:00+02:00")
	req.Assign("Dates", []any{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-05-06"})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if got["LastUpdatedAfter"] != "2024-03-01T08:00:00.000Z" {
		t.Errorf("LastUpdatedAfter = %q", got["LastUpdatedAfter"])
	}
	if got["Dates.member.1"] != "2024-01-02T03:04:05.000Z" {
		t.Errorf("Dates.member.1 = %q", got["Dates.member.1"])
	}
	if got["Dates.member.2"] != "2024-05-06T00:00:00.000Z" {
		t.Errorf("Dates.member.2 = %q", got["Dates.member.2"])
	}
}

func TestFinalize_InvalidTimestamp(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA1")
	c, _ := req.Complex("Items")
	c.Add(Member{"SellerSKU": "X"})
	req.Assign("UpdatedAt", "not a date")

	got, err := req.Finalize()
	if got != nil {
		t.Errorf("Finalize() returned partial params %v", got)
	}
	var invalid *InvalidTimestampError
	if !errors.As(err, &invalid) {
		t.Fatalf("Finalize() error = %v, want InvalidTimestampError", err)
	}
	if invalid.Field != "UpdatedAt" {
		t.Errorf("Field = %q, want UpdatedAt", invalid.Field)
	}
}

func TestFinalize_ComplexFieldWrongType(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA1")
	req.Assign("Items", []map[string]any{{"SellerSKU": "X"}})

	_, err := req.Finalize()
	if !errors.Is(err, types.ErrInvalidComplexValue) {
		t.Errorf("Finalize() error = %v, want ErrInvalidComplexValue", err)
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	req := NewRequest(shipmentAction(t))
	req.Assign("ShipmentId", "FBA1")
	c, _ := req.Complex("Items")
	c.Add(Member{"SellerSKU": "A", "Quantity": 1}).Add(Member{"SellerSKU": "B", "Quantity": 2})
	req.Assign("ShipmentIds", []string{"X"})

	first, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	second, err := req.Finalize()
	if err != nil {
		t.Fatalf("second Finalize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Finalize() not idempotent: %v vs %v", first, second)
	}
}

func TestFinalize_WireKeyCollision(t *testing.T) {
	schema, err := Compile("Colliding", map[string]Definition{
		"Flat":  {WirePath: "Items.member.1.SellerSKU"},
		"Items": {WirePath: "Items", Kind: KindComplex, Construct: itemsList},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	req := NewRequest(&Action{Name: "Colliding", Version: "1", Schema: schema})
	req.Assign("Flat", "X")
	c, _ := req.Complex("Items")
	c.Add(Member{"SellerSKU": "Y"})

	if _, err := req.Finalize(); !errors.Is(err, types.ErrWireKeyCollision) {
		t.Errorf("Finalize() error = %v, want ErrWireKeyCollision", err)
	}
}

func TestFinalize_NoFieldsOnlyMetadata(t *testing.T) {
	schema, err := Compile("GetServiceStatus", map[string]Definition{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	req := NewRequest(&Action{Name: "GetServiceStatus", Version: "2010-10-01", Schema: schema})

	got, err := req.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	want := types.Params{"Action": "GetServiceStatus", "Version": "2010-10-01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Finalize() = %v, want %v", got, want)
	}
}
