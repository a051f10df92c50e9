package fba

import "github.com/solatis/mwsfba/internal/params"

// Enums are stateless, so one instance of each backs every action.
var (
	// ResponseGroups selects the detail level of ListInventorySupply.
	ResponseGroups = params.NewEnum("Basic", "Detailed")

	// ShippingSpeedCategories lists outbound shipping speeds.
	ShippingSpeedCategories = params.NewEnum("Standard", "Expedited", "Priority")

	// FulfillmentPolicies lists outbound partial-fulfillment policies.
	FulfillmentPolicies = params.NewEnum("FillOrKill", "FillAll", "FillAllAvailable")
)
