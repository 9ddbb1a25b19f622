package users

import (
	"time"

	"github.com/pois-treasure/poi-backend/internal/assignment"
	"github.com/pois-treasure/poi-backend/internal/profiles"
)

// User is a survey participant. Identity is the username; UUID is a
// stable public identifier generated once at creation and never reused.
// Deleting a user cascades to their assignments, never to POIs.
type User struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	Username    string                  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	UUID        string                  `gorm:"size:36;unique;not null" json:"uuid"`
	ProfileID   uint                    `gorm:"not null" json:"profile_id"`
	Profile     profiles.Profile        `gorm:"foreignKey:ProfileID" json:"-"`
	Assignments []assignment.Assignment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time               `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
