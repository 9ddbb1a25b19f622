package tracking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pois-treasure/poi-backend/internal/db"
)

// BatchHandler ingests a batch of passive location samples. Append-only:
// no update or delete path exists for tracking rows.
func BatchHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Points []struct {
			UserID    uint   `json:"user_id"`
			WKTPoint  string `json:"wkt_point"`
			Timestamp string `json:"timestamp"`
		} `json:"points"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	points := make([]TrackingPoint, 0, len(input.Points))
	for _, p := range input.Points {
		point := TrackingPoint{UserID: p.UserID, WKTPoint: p.WKTPoint}
		if p.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
				point.Timestamp = ts
			}
		}
		points = append(points, point)
	}

	if len(points) > 0 {
		if err := db.DB.Create(&points).Error; err != nil {
			http.Error(w, "Failed to store tracking points", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "count": len(points)})
}
