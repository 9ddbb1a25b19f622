package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/join", JoinHandler)
	r.Get("/{userID}/assignments", AssignmentsHandler)
	r.Post("/{userID}/visit", VisitHandler)

	return r
}
