package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TrackIDList is an ordered list of track ids stored as a JSON column.
// Order carries relevance; duplicates are forbidden by the writer.
type TrackIDList []uint

// Scan implements the sql.Scanner interface for reading from database
func (l *TrackIDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for TrackIDList: %T", value)
	}

	if len(data) == 0 {
		*l = TrackIDList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value implements the driver.Valuer interface for writing to database
func (l TrackIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// RecommendationCache holds the last computed recommendation list for a
// user. Exactly one row per user; the engine overwrites it in place on
// every recompute and never deletes it. Staleness is a pure function of
// now minus GeneratedAt.
type RecommendationCache struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	TrackIDs    TrackIDList `gorm:"type:jsonb;not null" json:"track_ids"`
	GeneratedAt time.Time   `gorm:"not null;index" json:"generated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
