package fba

import "github.com/solatis/mwsfba/internal/params"

// Complex list factories. Each returns a fresh, empty list bound to the wire
// prefix the Fulfillment API expects. Typed member structs below convert to
// params.Member; zero-valued optional fields are left out of the member so
// they never reach the wire.

// InboundShipmentItems is used by CreateInboundShipment and UpdateInboundShipment.
func InboundShipmentItems() *params.ComplexList {
	return params.NewComplexList("InboundShipmentItems.member")
}

// InboundShipmentPlanRequestItems is used by CreateInboundShipmentPlan.
func InboundShipmentPlanRequestItems() *params.ComplexList {
	return params.NewComplexList("InboundShipmentPlanRequestItems.member")
}

// CreateLineItems is used by CreateFulfillmentOrder and UpdateFulfillmentOrder.
func CreateLineItems() *params.ComplexList {
	return params.NewComplexList("Items.member")
}

// PreviewLineItems is used by GetFulfillmentPreview.
func PreviewLineItems() *params.ComplexList {
	return params.NewComplexList("Items.member")
}

// PartneredSmallParcelPackageList is used by PutTransportContent.
func PartneredSmallParcelPackageList() *params.ComplexList {
	return params.NewComplexList("TransportDetails.PartneredSmallParcelData.PackageList.member")
}

// NonPartneredSmallParcelPackageList is used by PutTransportContent.
func NonPartneredSmallParcelPackageList() *params.ComplexList {
	return params.NewComplexList("TransportDetails.NonPartneredSmallParcelData.PackageList.member")
}

// InboundShipmentItem is one member of InboundShipmentItems.
type InboundShipmentItem struct {
	SellerSKU       string
	QuantityShipped int
	QuantityInCase  int // optional
}

func (i InboundShipmentItem) Member() params.Member {
	m := params.Member{
		"SellerSKU":       i.SellerSKU,
		"QuantityShipped": i.QuantityShipped,
	}
	if i.QuantityInCase != 0 {
		m["QuantityInCase"] = i.QuantityInCase
	}
	return m
}

// PlanRequestItem is one member of InboundShipmentPlanRequestItems.
type PlanRequestItem struct {
	SellerSKU      string
	ASIN           string
	Quantity       int
	Condition      string
	QuantityInCase int // optional
}

func (i PlanRequestItem) Member() params.Member {
	m := params.Member{
		"SellerSKU": i.SellerSKU,
		"Quantity":  i.Quantity,
	}
	optional(m, "ASIN", i.ASIN)
	optional(m, "Condition", i.Condition)
	if i.QuantityInCase != 0 {
		m["QuantityInCase"] = i.QuantityInCase
	}
	return m
}

// CreateLineItem is one member of CreateLineItems. Quantity,
// SellerFulfillmentOrderItemID and SellerSKU are required by the service;
// the rest are optional and omitted when empty.
type CreateLineItem struct {
	SellerSKU                    string
	SellerFulfillmentOrderItemID string
	Quantity                     int
	DisplayableComment           string
	GiftMessage                  string
	PerUnitDeclaredValue         string // decimal amount, e.g. "19.99"
	PerUnitDeclaredCurrency      string // ISO 4217 code
}

func (i CreateLineItem) Member() params.Member {
	m := params.Member{
		"Quantity":                     i.Quantity,
		"SellerFulfillmentOrderItemId": i.SellerFulfillmentOrderItemID,
		"SellerSKU":                    i.SellerSKU,
	}
	optional(m, "DisplayableComment", i.DisplayableComment)
	optional(m, "GiftMessage", i.GiftMessage)
	optional(m, "PerUnitDeclaredValue.Value", i.PerUnitDeclaredValue)
	optional(m, "PerUnitDeclaredValue.CurrencyCode", i.PerUnitDeclaredCurrency)
	return m
}

// RequiredMember keeps only the fields the service requires.
func (i CreateLineItem) RequiredMember() params.Member {
	return params.Member{
		"Quantity":                     i.Quantity,
		"SellerFulfillmentOrderItemId": i.SellerFulfillmentOrderItemID,
		"SellerSKU":                    i.SellerSKU,
	}
}

// PreviewLineItem is one member of PreviewLineItems.
type PreviewLineItem struct {
	SellerSKU                       string
	SellerFulfillmentOrderItemID    string
	Quantity                        int
	EstimatedShippingWeight         string // optional
	ShippingWeightCalculationMethod string // optional
}

func (i PreviewLineItem) Member() params.Member {
	m := params.Member{
		"Quantity":                     i.Quantity,
		"SellerFulfillmentOrderItemId": i.SellerFulfillmentOrderItemID,
		"SellerSKU":                    i.SellerSKU,
	}
	optional(m, "EstimatedShippingWeight", i.EstimatedShippingWeight)
	optional(m, "ShippingWeightCalculationMethod", i.ShippingWeightCalculationMethod)
	return m
}

// Parcel is one member of PartneredSmallParcelPackageList. Zero values
// are left out of the member.
type Parcel struct {
	WeightUnit       string
	WeightValue      float64
	DimensionsUnit   string
	DimensionsLength float64
	DimensionsWidth  float64
	DimensionsHeight float64
}

func (p Parcel) Member() params.Member {
	m := params.Member{}
	optional(m, "Weight.Unit", p.WeightUnit)
	optionalNumber(m, "Weight.Value", p.WeightValue)
	optional(m, "Dimensions.Unit", p.DimensionsUnit)
	optionalNumber(m, "Dimensions.Length", p.DimensionsLength)
	optionalNumber(m, "Dimensions.Width", p.DimensionsWidth)
	optionalNumber(m, "Dimensions.Height", p.DimensionsHeight)
	return m
}

// TrackedParcel is one member of NonPartneredSmallParcelPackageList.
type TrackedParcel struct {
	TrackingID string
}

func (p TrackedParcel) Member() params.Member {
	return params.Member{"TrackingId": p.TrackingID}
}

func optional(m params.Member, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func optionalNumber(m params.Member, key string, value float64) {
	if value != 0 {
		m[key] = value
	}
}
