// Package types provides models shared across the parameter engine, the
// Fulfillment catalog and the service layer.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library. ID utilities in ids.go import uuid but are isolated.
package types

import (
	"net/url"
	"sort"
	"strings"
)

// Params is a flattened request: wire parameter name to string value.
// Keys follow the remote convention (Name, Name.N, Name.member.N.SubField);
// the service parses them positionally, so no key may be emitted twice.
type Params map[string]string

// Keys returns parameter names in byte order, the order MWS uses for its
// canonical query string.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode renders the parameters as a query string sorted by key.
// Escaping is RFC 3986 (space as %20, '~' unreserved) rather than
// form encoding, matching what the MWS signer canonicalizes.
func (p Params) Encode() string {
	var b strings.Builder
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(p[k]))
	}
	return b.String()
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Engine limits. Schemas are static, so path limits are enforced at compile
// time; list limits are enforced at finalize time.
const (
	// MaxPathDepth bounds dot-separated segments in one wire path.
	// The deepest Fulfillment path (TransportDetails.PartneredSmallParcelData.PackageList.member.N.Weight.Unit)
	// has 7 segments.
	MaxPathDepth = 16

	// MaxListLength bounds elements in one list or complex list.
	// MWS rejects far smaller batches; this only stops runaway input.
	MaxListLength = 1000

	// MaxMemberFields bounds sub-fields per complex list member.
	MaxMemberFields = 64
)

// Reserved metadata keys merged into every request.
const (
	KeyAction  = "Action"
	KeyVersion = "Version"
)
