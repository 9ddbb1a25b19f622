package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/pois-treasure/poi-backend/internal/assignment"
	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/pois"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"github.com/pois-treasure/poi-backend/internal/results"
	"github.com/pois-treasure/poi-backend/internal/storage"
	"github.com/pois-treasure/poi-backend/internal/surveys"
	"github.com/pois-treasure/poi-backend/internal/tracking"
	"github.com/pois-treasure/poi-backend/internal/users"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	// Migration order follows the foreign keys: profiles and pois first,
	// then users, then the assignment table referencing both.
	profiles.Init()
	pois.Init()
	users.Init()
	assignment.Init()
	surveys.Init()
	tracking.Init()
	storage.Init()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Get("/", RootHandler)

	r.Mount("/users", users.SetupRoutes())
	r.Mount("/profiles", profiles.SetupRoutes())
	r.Mount("/pois", pois.SetupRoutes())
	r.Mount("/surveys", surveys.SetupRoutes())
	r.Mount("/tracking", tracking.SetupRoutes())
	r.Mount("/results", results.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
