package results

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/surveys/geojson", SurveysGeoJSONHandler)
	r.Get("/tracking/geojson", TrackingGeoJSONHandler)
	r.Get("/stats", StatsHandler)
	r.Get("/heatmap", HeatmapHandler)

	return r
}
