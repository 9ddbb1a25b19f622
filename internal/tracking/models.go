package tracking

import "time"

// TrackingPoint is one passive location sample. The server clock is
// authoritative for Timestamp; a client-supplied value is stored when
// present but nothing downstream depends on it being honest.
type TrackingPoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_tracking_user_time;not null" json:"user_id"`
	WKTPoint  string    `gorm:"type:text;not null" json:"wkt_point"`
	Timestamp time.Time `gorm:"index:idx_user_tracking_user_time;autoCreateTime" json:"timestamp"`
}

func (TrackingPoint) TableName() string {
	return "user_tracking"
}
