// internal/params/wirepath.go
package params

import (
	"strconv"
	"strings"

	"github.com/solatis/mwsfba/internal/types"
)

/*
 * Wire path model.
 *
 * A wire path is the dot-separated parameter name the remote service parses
 * positionally: "ShipmentId", "ShipmentIdList.member",
 * "TransportDetails.PartneredSmallParcelData.PackageList.member".
 * Emitted keys append 1-based indices and sub-field names:
 * "ShipmentIdList.member.2", "Items.member.1.PerUnitDeclaredValue.Value".
 *
 * Schema paths are static, so they are parsed once at compile time to catch
 * empty segments and runaway depth before any request is built.
 */

// Segment is one component of a wire path.
type Segment struct {
	Name    string // literal text of the segment
	Index   int    // 1-based index when IsIndex is set
	IsIndex bool   // segment is an all-digit positional index
}

// ParseWirePath splits and validates a wire path.
// Returns ErrInvalidWirePath for empty paths or empty segments, and
// ErrPathTooDeep beyond MaxPathDepth segments.
func ParseWirePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, types.ErrInvalidWirePath
	}
	parts := strings.Split(path, ".")
	if len(parts) > types.MaxPathDepth {
		return nil, types.ErrPathTooDeep
	}

	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " =&") {
			return nil, types.ErrInvalidWirePath
		}
		seg := Segment{Name: p}
		if n, err := strconv.Atoi(p); err == nil {
			// Wire indices are 1-based; "0" never appears in a valid key
			if n < 1 {
				return nil, types.ErrInvalidWirePath
			}
			seg.Index = n
			seg.IsIndex = true
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Join composes a wire key from path parts, skipping empty parts.
func Join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// indexed returns "{path}.{i}".
func indexed(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}
