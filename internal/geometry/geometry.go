// Package geometry wraps WKT parsing for the rest of the backend. Geometry
// columns are stored as raw WKT text; everything that exports spatial data
// funnels through here to get structured points back out.
//
// Parsing is deliberately lenient at the call site: a row whose WKT fails to
// parse is skipped by the caller, never allowed to abort a whole aggregation.
package geometry

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
)

// Parse decodes a WKT string into a geometry. Empty or whitespace-only
// input is an error, same as malformed text.
func Parse(text string) (orb.Geometry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty WKT")
	}
	geom, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("parse WKT %q: %w", text, err)
	}
	return geom, nil
}

// Centroid reduces an area geometry to its centroid point.
func Centroid(g orb.Geometry) orb.Point {
	center, _ := planar.CentroidArea(g)
	return center
}

// ToPoint collapses a geometry to a single point: points pass through,
// polygons and other area geometries become their centroid. The second
// return is false for nil geometries.
func ToPoint(g orb.Geometry) (orb.Point, bool) {
	switch geom := g.(type) {
	case nil:
		return orb.Point{}, false
	case orb.Point:
		return geom, true
	default:
		return Centroid(g), true
	}
}

// ParsePoint is Parse followed by ToPoint, for the common "give me a
// coordinate or skip this row" path.
func ParsePoint(text string) (orb.Point, bool) {
	geom, err := Parse(text)
	if err != nil {
		return orb.Point{}, false
	}
	return ToPoint(geom)
}
