// Package fba holds the static Fulfillment by Amazon action catalog: one
// field table per action, grouped by the MWS section that serves it.
//
// Field tables are configuration data; all encoding behavior lives in
// internal/params. Schemas compile once per catalog and are shared
// read-only, while every call gets its own params.Request.
package fba

import (
	"fmt"
	"sort"

	"github.com/solatis/mwsfba/internal/params"
	"github.com/solatis/mwsfba/internal/types"
)

// DefaultVersion is the Fulfillment API version every section uses.
const DefaultVersion = "2010-10-01"

// Catalog groups.
const (
	GroupInbound   = "inbound"
	GroupInventory = "inventory"
	GroupOutbound  = "outbound"
)

// section describes one MWS endpoint family.
type section struct {
	title    string
	endpoint string
	actions  map[string]map[string]params.Definition
}

var sections = map[string]section{
	GroupInbound: {
		title:    "Inbound Shipments",
		endpoint: "FulfillmentInboundShipment",
		actions:  inboundActions(),
	},
	GroupInventory: {
		title:    "Inventory",
		endpoint: "FulfillmentInventory",
		actions:  inventoryActions(),
	},
	GroupOutbound: {
		title:    "Outbound Shipments",
		endpoint: "FulfillmentOutboundShipment",
		actions:  outboundActions(),
	},
}

var defaultCatalog = mustCatalog(DefaultVersion)

// Catalog is a compiled, read-only set of actions. Safe for concurrent use.
type Catalog struct {
	version string
	actions map[string]map[string]*params.Action
}

// Default returns the catalog compiled for DefaultVersion.
func Default() *Catalog { return defaultCatalog }

// NewCatalog compiles every action for version. The version is both the wire
// Version value and the last endpoint path segment.
func NewCatalog(version string) (*Catalog, error) {
	if version == "" {
		return nil, fmt.Errorf("catalog version required")
	}
	c := &Catalog{
		version: version,
		actions: make(map[string]map[string]*params.Action, len(sections)),
	}
	for group, sec := range sections {
		c.actions[group] = make(map[string]*params.Action, len(sec.actions))
		for name, defs := range sec.actions {
			schema, err := params.Compile(name, defs)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", group, name, err)
			}
			c.actions[group][name] = &params.Action{
				Name:    name,
				Group:   group,
				Path:    fmt.Sprintf("/%s/%s", sec.endpoint, version),
				Version: version,
				Schema:  schema,
			}
		}
	}
	return c, nil
}

// mustCatalog panics on compile failure; the tables are static, so a failure
// is a data-entry bug caught by the first test run.
func mustCatalog(version string) *Catalog {
	c, err := NewCatalog(version)
	if err != nil {
		panic(err)
	}
	return c
}

// Version returns the API version the catalog was compiled for.
func (c *Catalog) Version() string { return c.version }

// Lookup returns the static metadata for group/action.
func (c *Catalog) Lookup(group, action string) (*params.Action, error) {
	a, ok := c.actions[group][action]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", group, action, types.ErrUnknownAction)
	}
	return a, nil
}

// New returns a fresh, empty request for group/action.
func (c *Catalog) New(group, action string) (*params.Request, error) {
	a, err := c.Lookup(group, action)
	if err != nil {
		return nil, err
	}
	return params.NewRequest(a), nil
}

// Groups returns the group names in sorted order.
func (c *Catalog) Groups() []string {
	out := make([]string, 0, len(c.actions))
	for g := range c.actions {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Actions returns the action names of group in sorted order.
func (c *Catalog) Actions(group string) []string {
	out := make([]string, 0, len(c.actions[group]))
	for a := range c.actions[group] {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// GroupTitle returns the display name of group.
func GroupTitle(group string) string {
	return sections[group].title
}
