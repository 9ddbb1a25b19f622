package assignment

import (
	"time"

	"github.com/pois-treasure/poi-backend/internal/pois"
)

// Assignment links a user to a POI they have been asked to visit. The
// composite unique index is the source of truth for "a user holds a POI
// at most once" — concurrent joins race on it rather than on any
// in-process lock.
type Assignment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null;uniqueIndex:uq_user_poi" json:"user_id"`
	POIID      uint       `gorm:"index;not null;uniqueIndex:uq_user_poi" json:"poi_id"`
	POI        pois.POI   `gorm:"foreignKey:POIID" json:"poi"`
	AssignedAt time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
	Visited    bool       `gorm:"not null;default:false" json:"visited"`
	VisitedAt  *time.Time `json:"visited_at"`
}

func (Assignment) TableName() string {
	return "user_poi_assignments"
}
