package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pois-treasure/poi-backend/internal/assignment"
	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type joinResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	UUID         string `json:"uuid"`
	Profile      string `json:"profile"`
	AssignedPOIs []uint `json:"assigned_pois"`
}

// JoinHandler is hit when a participant scans the QR code. Join is
// idempotent at the username level: an existing username gets the same
// user back (with the engine re-run, a no-op once quotas are met), a new
// one is created and assigned its profile's POI quota.
func JoinHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Profile  string `json:"profile"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Usernames arrive from phone keyboards; normalize so "José" typed
	// composed and decomposed resolves to one user.
	username := norm.NFC.String(strings.TrimSpace(input.Username))
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	var user User
	err := db.DB.First(&user, "username = ?", username).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile, perr := profiles.FindByName(db.DB, input.Profile)
		if perr != nil {
			if errors.Is(perr, gorm.ErrRecordNotFound) {
				http.Error(w, fmt.Sprintf("Profile %q not found", input.Profile), http.StatusNotFound)
				return
			}
			http.Error(w, "DB error: "+perr.Error(), http.StatusInternalServerError)
			return
		}

		user = User{
			Username:  username,
			UUID:      uuid.NewString(),
			ProfileID: profile.ID,
		}
		if cerr := db.DB.Create(&user).Error; cerr != nil {
			// Two devices joining with the same username race on the
			// unique index; whoever lost just picks up the winner's row.
			if ferr := db.DB.First(&user, "username = ?", username).Error; ferr != nil {
				http.Error(w, "Failed to create user", http.StatusInternalServerError)
				return
			}
		} else {
			status = http.StatusCreated
		}
	}

	var profile profiles.Profile
	if err := db.DB.First(&profile, user.ProfileID).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	assigned, err := assignment.AssignForUser(db.DB, user.ID, profile.Rules)
	if err != nil {
		http.Error(w, "Failed to assign POIs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(joinResponse{
		ID:           user.ID,
		Username:     user.Username,
		UUID:         user.UUID,
		Profile:      profile.Name,
		AssignedPOIs: assigned,
	})
}

type assignmentOut struct {
	POI       interface{} `json:"poi"`
	Visited   bool        `json:"visited"`
	VisitedAt *string     `json:"visited_at"`
}

func AssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	list, err := assignment.ListForUser(db.DB, userID)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]assignmentOut, 0, len(list))
	for _, a := range list {
		var visitedAt *string
		if a.VisitedAt != nil {
			s := a.VisitedAt.Format(time.RFC3339)
			visitedAt = &s
		}
		out = append(out, assignmentOut{
			POI:       a.POI,
			Visited:   a.Visited,
			VisitedAt: visitedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func VisitHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var input struct {
		POIID   uint  `json:"poi_id"`
		Visited *bool `json:"visited"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	visited := true
	if input.Visited != nil {
		visited = *input.Visited
	}

	err := assignment.MarkVisit(db.DB, userID, input.POIID, visited)
	if errors.Is(err, assignment.ErrNotFound) {
		http.Error(w, "Assignment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func userIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		http.Error(w, "Invalid user id: "+raw, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
