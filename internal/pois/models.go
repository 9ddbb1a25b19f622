package pois

import "time"

// POI is a point of interest participants are sent out to visit. Geometry
// is stored as raw WKT text; points and polygons both occur, polygons are
// collapsed to centroids at export time.
type POI struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Category    string    `gorm:"size:50;index;not null" json:"category"`
	WKTGeometry string    `gorm:"type:text;not null" json:"wkt_geometry"`
	CreatedAt   time.Time `json:"created_at"`
}

func (POI) TableName() string {
	return "pois"
}
