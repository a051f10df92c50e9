package fba

import "github.com/solatis/mwsfba/internal/params"

type defs = map[string]params.Definition

func plain(path string) params.Definition { return params.Definition{WirePath: path} }

func required(path string) params.Definition {
	return params.Definition{WirePath: path, Required: true}
}

func timestamp(path string) params.Definition {
	return params.Definition{WirePath: path, Kind: params.KindTimestamp}
}

func list(path string) params.Definition {
	return params.Definition{WirePath: path, List: true}
}

func enum(path string, e *params.Enum, req bool) params.Definition {
	return params.Definition{WirePath: path, Kind: params.KindEnum, Enum: e, Required: req}
}

func complexList(construct func() *params.ComplexList, req bool) params.Definition {
	l := construct()
	return params.Definition{WirePath: l.Prefix(), Kind: params.KindComplex, Construct: construct, Required: req}
}

func nextToken() defs {
	return defs{"NextToken": required("NextToken")}
}

// shipFrom declares the ship-from address fields under prefix. The six
// address basics are required when strict is set.
func shipFrom(d defs, prefix string, strict bool) {
	field := plain
	if strict {
		field = required
	}
	d["ShipFromName"] = field(prefix + ".Name")
	d["ShipFromAddressLine1"] = field(prefix + ".AddressLine1")
	d["ShipFromAddressLine2"] = plain(prefix + ".AddressLine2")
	d["ShipFromCity"] = field(prefix + ".City")
	d["ShipFromDistrictOrCounty"] = plain(prefix + ".DistrictOrCounty")
	d["ShipFromStateOrProvince"] = field(prefix + ".StateOrProvinceCode")
	d["ShipFromPostalCode"] = field(prefix + ".PostalCode")
	d["ShipFromCountryCode"] = field(prefix + ".CountryCode")
}

// address declares an outbound destination address; field names are
// fieldPrefix + suffix, wire names wirePrefix + "." + wire suffix.
func address(d defs, fieldPrefix, wirePrefix string) {
	fields := []struct{ field, wire string }{
		{"Name", "Name"},
		{"AddressLine1", "Line1"},
		{"AddressLine2", "Line2"},
		{"AddressLine3", "Line3"},
		{"City", "City"},
		{"StateOrProvince", "StateOrProvinceCode"},
		{"PostalCode", "PostalCode"},
		{"CountryCode", "CountryCode"},
		{"DistrictOrCounty", "DistrictOrCounty"},
		{"PhoneNumber", "PhoneNumber"},
	}
	for _, f := range fields {
		d[fieldPrefix+f.field] = plain(wirePrefix + "." + f.wire)
	}
}

// inboundShipmentHeader is shared by Create and UpdateInboundShipment.
func inboundShipmentHeader() defs {
	d := defs{
		"ShipmentId":                     required("ShipmentId"),
		"ShipmentName":                   required("InboundShipmentHeader.ShipmentName"),
		"DestinationFulfillmentCenterId": required("InboundShipmentHeader.DestinationFulfillmentCenterId"),
		"ShipmentStatus":                 plain("InboundShipmentHeader.ShipmentStatus"),
		"IntendedBoxContentsSource":      plain("InboundShipmentHeader.IntendedBoxContentsSource"),
		"LabelPrepPreference":            plain("InboundShipmentHeader.LabelPrepPreference"),
		"InboundShipmentItems":           complexList(InboundShipmentItems, true),
	}
	shipFrom(d, "InboundShipmentHeader.ShipFromAddress", true)
	return d
}

func inboundActions() map[string]defs {
	plan := defs{
		"LabelPrepPreference":             required("LabelPrepPreference"),
		"InboundShipmentPlanRequestItems": complexList(InboundShipmentPlanRequestItems, true),
	}
	shipFrom(plan, "ShipFromAddress", false)

	return map[string]defs{
		"GetServiceStatus":          {},
		"CreateInboundShipment":     inboundShipmentHeader(),
		"UpdateInboundShipment":     inboundShipmentHeader(),
		"CreateInboundShipmentPlan": plan,
		"ListInboundShipmentItems": {
			"ShipmentId":        required("ShipmentId"),
			"LastUpdatedAfter":  timestamp("LastUpdatedAfter"),
			"LastUpdatedBefore": timestamp("LastUpdatedBefore"),
		},
		"ListInboundShipmentItemsByNextToken": nextToken(),
		"ListInboundShipments": {
			"ShipmentStatuses":  list("ShipmentStatusList.member"),
			"ShipmentIds":       list("ShipmentIdList.member"),
			"LastUpdatedAfter":  timestamp("LastUpdatedAfter"),
			"LastUpdatedBefore": timestamp("LastUpdatedBefore"),
		},
		"ListInboundShipmentsByNextToken": nextToken(),
		// Partnered and non-partnered details are alternatives selected by
		// IsPartnered and ShipmentType, so none of them is required here.
		"PutTransportContent": {
			"ShipmentId":                             required("ShipmentId"),
			"IsPartnered":                            required("IsPartnered"),
			"ShipmentType":                           required("ShipmentType"),
			"PartneredSmallParcelDataCarrierName":    plain("TransportDetails.PartneredSmallParcelData.CarrierName"),
			"PartneredSmallParcelDataPackageList":    complexList(PartneredSmallParcelPackageList, false),
			"NonPartneredSmallParcelDataCarrierName": plain("TransportDetails.NonPartneredSmallParcelData.CarrierName"),
			"NonPartneredSmallParcelDataPackageList": complexList(NonPartneredSmallParcelPackageList, false),
			"NonPartneredLtlDataCarrierName":         plain("TransportDetails.NonPartneredLtlData.CarrierName"),
			"NonPartneredLtlDataProNumber":           plain("TransportDetails.NonPartneredLtlData.ProNumber"),
		},
		"GetTransportContent": {
			"ShipmentId": required("ShipmentId"),
		},
	}
}

func inventoryActions() map[string]defs {
	return map[string]defs{
		"GetServiceStatus": {},
		"ListInventorySupply": {
			"SellerSkus":         list("SellerSkus.member"),
			"QueryStartDateTime": timestamp("QueryStartDateTime"),
			"ResponseGroup":      enum("ResponseGroup", ResponseGroups, false),
		},
		"ListInventorySupplyByNextToken": nextToken(),
	}
}

// fulfillmentOrder is shared by Create and UpdateFulfillmentOrder.
func fulfillmentOrder(lineItemsRequired bool) defs {
	d := defs{
		"SellerFulfillmentOrderId": required("SellerFulfillmentOrderId"),
		"ShippingSpeedCategory":    enum("ShippingSpeedCategory", ShippingSpeedCategories, true),
		"DisplayableOrderId":       required("DisplayableOrderId"),
		"DisplayableOrderDateTime": timestamp("DisplayableOrderDateTime"),
		"DisplayableOrderComment":  plain("DisplayableOrderComment"),
		"FulfillmentPolicy":        enum("FulfillmentPolicy", FulfillmentPolicies, false),
		"FulfillmentAction":        plain("FulfillmentAction"),
		"NotificationEmails":       list("NotificationEmailList.member"),
		"LineItems":                complexList(CreateLineItems, lineItemsRequired),
	}
	address(d, "Dest", "DestinationAddress")
	return d
}

func outboundActions() map[string]defs {
	create := fulfillmentOrder(true)
	create["FulfillmentMethod"] = plain("FulfillmentMethod")

	preview := defs{
		"LineItems":      complexList(PreviewLineItems, true),
		"ShippingSpeeds": {WirePath: "ShippingSpeedCategories.member", Kind: params.KindEnum, List: true, Enum: ShippingSpeedCategories},
	}
	address(preview, "To", "Address")

	return map[string]defs{
		"GetServiceStatus": {},
		"CancelFulfillmentOrder": {
			"SellerFulfillmentOrderId": required("SellerFulfillmentOrderId"),
		},
		"CreateFulfillmentOrder": create,
		"UpdateFulfillmentOrder": fulfillmentOrder(false),
		"GetFulfillmentOrder": {
			"SellerFulfillmentOrderId": required("SellerFulfillmentOrderId"),
		},
		"GetFulfillmentPreview": preview,
		"ListAllFulfillmentOrders": {
			"QueryStartDateTime": {WirePath: "QueryStartDateTime", Kind: params.KindTimestamp, Required: true},
			"FulfillmentMethods": list("FulfillmentMethod.member"),
		},
		"ListAllFulfillmentOrdersByNextToken": nextToken(),
	}
}
