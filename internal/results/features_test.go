package results_test

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pois-treasure/poi-backend/internal/results"
)

// fakeRow implements results.FeatureSource without a database row.
type fakeRow struct {
	wkt   string
	props map[string]interface{}
}

func (f fakeRow) WKT() string                        { return f.wkt }
func (f fakeRow) Properties() map[string]interface{} { return f.props }

// TestToFeatureCollection_SkipsBadGeometry verifies that out of N rows
// where M parse, exactly M features come back and nothing panics.
func TestToFeatureCollection_SkipsBadGeometry(t *testing.T) {
	rows := []results.FeatureSource{
		fakeRow{wkt: "POINT (1 2)", props: map[string]interface{}{"id": 1}},
		fakeRow{wkt: "garbage", props: map[string]interface{}{"id": 2}},
		fakeRow{wkt: "", props: map[string]interface{}{"id": 3}},
		fakeRow{wkt: "POINT (3 4)", props: map[string]interface{}{"id": 4}},
	}

	fc := results.ToFeatureCollection(rows)
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if got := fc.Features[0].Properties["id"]; got != 1 {
		t.Errorf("expected first surviving row to be id 1, got %v", got)
	}
	if got := fc.Features[1].Properties["id"]; got != 4 {
		t.Errorf("expected second surviving row to be id 4, got %v", got)
	}
}

// TestToFeatureCollection_Empty verifies empty input serializes to an
// explicit empty collection, not null.
func TestToFeatureCollection_Empty(t *testing.T) {
	fc := results.ToFeatureCollection(nil)

	raw, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Type != "FeatureCollection" {
		t.Errorf("expected type FeatureCollection, got %q", decoded.Type)
	}
	if decoded.Features == nil {
		t.Error("features must be an empty array, not null")
	}
	if len(decoded.Features) != 0 {
		t.Errorf("expected no features, got %d", len(decoded.Features))
	}
}

// TestToFeatureCollection_PolygonCentroid verifies area geometries are
// exported as their centroid point.
func TestToFeatureCollection_PolygonCentroid(t *testing.T) {
	fc := results.ToFeatureCollection([]results.FeatureSource{
		fakeRow{wkt: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))", props: map[string]interface{}{}},
	})
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	point, ok := fc.Features[0].Geometry.(orb.Point)
	if !ok {
		t.Fatalf("expected a point geometry, got %T", fc.Features[0].Geometry)
	}
	if point.Lon() != 2 || point.Lat() != 2 {
		t.Errorf("expected centroid (2,2), got %v", point)
	}
}

// TestHeatmapPoints verifies the [lon, lat, 1] triples and silent
// exclusion of invalid geometries.
func TestHeatmapPoints(t *testing.T) {
	points := results.HeatmapPoints([]string{
		"POINT (-3.7 40.4)",
		"not wkt",
		"POINT (2.2 41.4)",
	})

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0] != [3]float64{-3.7, 40.4, 1} {
		t.Errorf("unexpected first point: %v", points[0])
	}
	if points[1][2] != 1 {
		t.Errorf("weight must be constant 1, got %v", points[1][2])
	}
}

// TestHeatmapPoints_Empty verifies no rows means an empty, non-nil slice
// so the payload renders as {"points": []}.
func TestHeatmapPoints_Empty(t *testing.T) {
	points := results.HeatmapPoints(nil)
	if points == nil {
		t.Fatal("expected non-nil slice")
	}
	raw, err := json.Marshal(map[string]interface{}{"points": points})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"points":[]}` {
		t.Errorf("unexpected payload: %s", raw)
	}
}
