package models

import (
	"time"
)

// UserActivity captures arbitrary user actions for analytics.
// Writes are best-effort; a failed insert never fails the request.
type UserActivity struct {
	ID      uint                   `gorm:"primaryKey" json:"id"`
	UserID  uint                   `gorm:"not null;index" json:"user_id"`
	Action  string                 `gorm:"size:100;not null;index" json:"action"`
	Details map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"details"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// AdminAuditLog records administrative actions
type AdminAuditLog struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	AdminUserID *uint                  `gorm:"index" json:"admin_user_id"`
	Action      string                 `gorm:"size:150;not null;index" json:"action"`
	TargetType  *string                `gorm:"size:100" json:"target_type"`
	TargetID    *string                `gorm:"size:100" json:"target_id"`
	Details     map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"details"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Admin *User `gorm:"foreignKey:AdminUserID" json:"-"`
}
