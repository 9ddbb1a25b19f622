package profiles

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Rules maps a POI category name to the number of POIs a joining user
// should be assigned from that category. Stored as JSONB.
type Rules map[string]int

func (r Rules) Value() (driver.Value, error) {
	if r == nil {
		r = Rules{}
	}
	return json.Marshal(r)
}

func (r *Rules) Scan(value interface{}) error {
	if value == nil {
		*r = Rules{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported rules column type %T", value)
	}
	return json.Unmarshal(raw, r)
}

type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Rules       Rules     `gorm:"type:jsonb;not null" json:"rules"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
