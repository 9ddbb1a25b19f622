package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pois-treasure/poi-backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Phones flush location buffers aggressively; cap the ingest rate
	// per client before it reaches the database.
	r.Use(middleware.RateLimit(5, 10))
	r.Post("/batch", BatchHandler)

	return r
}
