package surveys

import (
	"fmt"
	"time"
)

// SurveyReport is an append-only geotagged observation. Option must be
// one of the closed category set below; anything else is rejected before
// a row is written.
type SurveyReport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:140;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Option      string    `gorm:"size:80;not null" json:"option"`
	PhotoURL    *string   `gorm:"type:text" json:"photo_url"`
	WKTPoint    string    `gorm:"type:text;not null" json:"wkt_point"`
	CreatedAt   time.Time `json:"created_at"`
}

func (SurveyReport) TableName() string {
	return "survey_reports"
}

var validOptions = map[string]struct{}{
	"infrastructure":  {},
	"user_experience": {},
	"vehicles":        {},
	"regulation":      {},
	"equity":          {},
	"other":           {},
}

// ValidateOption checks a submitted category against the closed set.
func ValidateOption(option string) error {
	if _, ok := validOptions[option]; !ok {
		return fmt.Errorf("invalid survey category %q", option)
	}
	return nil
}
