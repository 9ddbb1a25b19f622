package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pois-treasure/poi-backend/internal/db"
	"gorm.io/gorm"
)

// FindByName resolves a profile by its unique name.
func FindByName(d *gorm.DB, name string) (*Profile, error) {
	var profile Profile
	if err := d.First(&profile, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func CreateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Rules       Rules  `json:"rules"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Profile name is required", http.StatusBadRequest)
		return
	}
	for category, count := range input.Rules {
		if count < 0 {
			// Negative quota means "no assignment", normalize on write.
			input.Rules[category] = 0
		}
	}

	var existing Profile
	err := db.DB.First(&existing, "name = ?", input.Name).Error
	if err == nil {
		http.Error(w, "Profile name already exists", http.StatusConflict)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	profile := Profile{
		Name:        input.Name,
		Description: input.Description,
		Rules:       input.Rules,
	}
	if profile.Rules == nil {
		profile.Rules = Rules{}
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		http.Error(w, "Failed to create profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(profile)
}

func ListProfilesHandler(w http.ResponseWriter, r *http.Request) {
	var list []Profile
	if err := db.DB.Find(&list).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
