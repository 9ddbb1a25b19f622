package results

import (
	"github.com/paulmach/orb/geojson"
	"github.com/pois-treasure/poi-backend/internal/geometry"
)

// FeatureSource is any row that can contribute one feature to an export:
// a WKT geometry plus whatever attributes should ride along verbatim.
type FeatureSource interface {
	WKT() string
	Properties() map[string]interface{}
}

// ToFeatureCollection builds a GeoJSON FeatureCollection from rows. Rows
// whose geometry fails to parse are dropped — one corrupt row must not
// deny results for the whole query — so the output may hold fewer
// features than there were rows. Empty input yields an explicit empty
// collection, never null.
func ToFeatureCollection(rows []FeatureSource) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, row := range rows {
		point, ok := geometry.ParsePoint(row.WKT())
		if !ok {
			continue
		}
		feature := geojson.NewFeature(point)
		feature.Properties = geojson.Properties(row.Properties())
		fc.Append(feature)
	}
	return fc
}

// HeatmapPoints reduces WKT geometries to [lon, lat, weight] triples with
// a constant weight of 1. Invalid geometries are silently excluded.
func HeatmapPoints(wkts []string) [][3]float64 {
	points := make([][3]float64, 0, len(wkts))
	for _, text := range wkts {
		point, ok := geometry.ParsePoint(text)
		if !ok {
			continue
		}
		points = append(points, [3]float64{point.Lon(), point.Lat(), 1})
	}
	return points
}
