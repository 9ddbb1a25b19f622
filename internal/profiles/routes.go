package profiles

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", CreateProfileHandler)
	r.Get("/", ListProfilesHandler)

	return r
}
