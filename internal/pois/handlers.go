package pois

import (
	"encoding/json"
	"net/http"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func ListPOIsHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&POI{})
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var list []POI
	if err := query.Find(&list).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
