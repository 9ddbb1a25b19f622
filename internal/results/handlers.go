package results

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/surveys"
	"github.com/pois-treasure/poi-backend/internal/tracking"
	"gorm.io/gorm"
)

// defaultTrackingLimit caps tracking exports so a long deployment cannot
// produce an unbounded payload.
const defaultTrackingLimit = 1000

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// applyDateRange narrows query on column by the optional start_date /
// end_date parameters. A malformed value is a caller error, reported with
// the offending value.
func applyDateRange(w http.ResponseWriter, r *http.Request, query *gorm.DB, column string) (*gorm.DB, bool) {
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		query = query.Where(column+" >= ?", t)
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		query = query.Where(column+" <= ?", t)
	}
	return query, true
}

// surveyFeature adapts a SurveyReport row for export. Attributes pass
// through verbatim; nullable photo_url stays null.
type surveyFeature struct {
	row surveys.SurveyReport
}

func (f surveyFeature) WKT() string { return f.row.WKTPoint }

func (f surveyFeature) Properties() map[string]interface{} {
	category := f.row.Option
	if category == "" {
		category = "other"
	}
	var photoURL interface{}
	if f.row.PhotoURL != nil {
		photoURL = *f.row.PhotoURL
	}
	return map[string]interface{}{
		"id":          f.row.ID,
		"title":       f.row.Title,
		"description": f.row.Description,
		"category":    category,
		"photo_url":   photoURL,
		"created_at":  f.row.CreatedAt.Format(time.RFC3339),
		"user_id":     f.row.UserID,
	}
}

type trackingFeature struct {
	row tracking.TrackingPoint
}

func (f trackingFeature) WKT() string { return f.row.WKTPoint }

func (f trackingFeature) Properties() map[string]interface{} {
	return map[string]interface{}{
		"id":        f.row.ID,
		"timestamp": f.row.Timestamp.Format(time.RFC3339),
		"user_id":   f.row.UserID,
	}
}

func SurveysGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&surveys.SurveyReport{})

	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("option = ?", category)
	}
	query, ok := applyDateRange(w, r, query, "created_at")
	if !ok {
		return
	}

	var rows []surveys.SurveyReport
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sources := make([]FeatureSource, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, surveyFeature{row: row})
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(ToFeatureCollection(sources)); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func TrackingGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&tracking.TrackingPoint{})

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, "Invalid user_id: "+raw, http.StatusBadRequest)
			return
		}
		query = query.Where("user_id = ?", userID)
	}
	query, ok := applyDateRange(w, r, query, "timestamp")
	if !ok {
		return
	}

	limit := defaultTrackingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit: "+raw, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	var rows []tracking.TrackingPoint
	if err := query.Order("timestamp DESC").Limit(limit).Find(&rows).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sources := make([]FeatureSource, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, trackingFeature{row: row})
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(ToFeatureCollection(sources)); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "surveys"
	}

	var wkts []string
	switch kind {
	case "surveys":
		query := db.DB.Model(&surveys.SurveyReport{})
		if category := r.URL.Query().Get("category"); category != "" {
			query = query.Where("option = ?", category)
		}
		if err := query.Pluck("wkt_point", &wkts).Error; err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	case "tracking":
		if err := db.DB.Model(&tracking.TrackingPoint{}).Pluck("wkt_point", &wkts).Error; err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Invalid heatmap type: "+kind, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"points": HeatmapPoints(wkts)})
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type profileParticipation struct {
	Profile          string  `json:"profile"`
	TotalUsers       int64   `json:"total_users"`
	UsersWithSurveys int64   `json:"users_with_surveys"`
	Rate             float64 `json:"participation_rate"`
}

type profileCount struct {
	Profile string `json:"profile"`
	Count   int64  `json:"count"`
}

func StatsHandler(w http.ResponseWriter, r *http.Request) {
	surveyQuery, ok := applyDateRange(w, r, db.DB.Model(&surveys.SurveyReport{}), "created_at")
	if !ok {
		return
	}
	trackingQuery, ok := applyDateRange(w, r, db.DB.Model(&tracking.TrackingPoint{}), "timestamp")
	if !ok {
		return
	}

	var totalSurveys, totalTracking, uniqueUsers, usersWithSurveys int64
	if err := surveyQuery.Count(&totalSurveys).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := trackingQuery.Count(&totalTracking).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Table("users").Count(&uniqueUsers).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := db.DB.Model(&surveys.SurveyReport{}).Distinct("user_id").Count(&usersWithSurveys).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Category breakdown respects the same date window as the totals.
	categoryQuery, ok := applyDateRange(w, r, db.DB.Model(&surveys.SurveyReport{}), "created_at")
	if !ok {
		return
	}
	var byCategory []categoryCount
	err := categoryQuery.
		Select("option AS category, COUNT(id) AS count").
		Group("option").
		Scan(&byCategory).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Outer join so profiles with zero users still appear, with rate 0.
	var participationRows []profileParticipation
	err = db.DB.Raw(`
		SELECT p.name AS profile,
		       COUNT(DISTINCT u.id) AS total_users,
		       COUNT(DISTINCT s.user_id) AS users_with_surveys
		FROM profiles p
		LEFT JOIN users u ON u.profile_id = p.id
		LEFT JOIN survey_reports s ON s.user_id = u.id
		GROUP BY p.id, p.name
	`).Scan(&participationRows).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range participationRows {
		participationRows[i].Rate = ParticipationRate(participationRows[i].TotalUsers, participationRows[i].UsersWithSurveys)
	}

	// Inner join here on purpose: profiles without surveys are absent.
	var byProfile []profileCount
	err = db.DB.Raw(`
		SELECT p.name AS profile, COUNT(s.id) AS count
		FROM profiles p
		JOIN users u ON u.profile_id = p.id
		JOIN survey_reports s ON s.user_id = u.id
		GROUP BY p.id, p.name
	`).Scan(&byProfile).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if byCategory == nil {
		byCategory = []categoryCount{}
	}
	if participationRows == nil {
		participationRows = []profileParticipation{}
	}
	if byProfile == nil {
		byProfile = []profileCount{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_surveys":         totalSurveys,
		"total_tracking_points": totalTracking,
		"unique_users":          uniqueUsers,
		"users_with_surveys":    usersWithSurveys,
		"surveys_by_category":   byCategory,
		"profile_participation": participationRows,
		"surveys_by_profile":    byProfile,
	})
}
