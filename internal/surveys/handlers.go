package surveys

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/storage"
)

// CreateSurveyHandler accepts either a JSON body or a multipart form with
// an optional photo part. Photo upload is best-effort: a storage failure
// stores a null URL and never fails the survey write.
func CreateSurveyHandler(w http.ResponseWriter, r *http.Request) {
	var report SurveyReport

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}

		userID, err := strconv.ParseUint(r.FormValue("user_id"), 10, 32)
		if err != nil {
			http.Error(w, "Invalid user_id: "+r.FormValue("user_id"), http.StatusBadRequest)
			return
		}
		report = SurveyReport{
			UserID:      uint(userID),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Option:      r.FormValue("option"),
			WKTPoint:    r.FormValue("wkt_point"),
		}

		if file, _, ferr := r.FormFile("photo"); ferr == nil {
			defer file.Close()
			report.PhotoURL = storage.UploadSurveyPhoto(r.Context(), file, report.UserID)
		}
	} else {
		var input struct {
			UserID      uint    `json:"user_id"`
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Option      string  `json:"option"`
			WKTPoint    string  `json:"wkt_point"`
			PhotoURL    *string `json:"photo_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		report = SurveyReport{
			UserID:      input.UserID,
			Title:       input.Title,
			Description: input.Description,
			Option:      input.Option,
			WKTPoint:    input.WKTPoint,
			PhotoURL:    input.PhotoURL,
		}
	}

	if report.Title == "" || report.WKTPoint == "" {
		http.Error(w, "Title and wkt_point are required", http.StatusBadRequest)
		return
	}
	if err := ValidateOption(report.Option); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := db.DB.Create(&report).Error; err != nil {
		http.Error(w, "Failed to create survey report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "id": report.ID})
}
