package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationTypeEmail  = "email"
	NotificationTypeSystem = "system"
)

// Notification is an in-app record. It is the source of truth; email is best effort.
type Notification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message     string    `gorm:"type:text" json:"message"`
	Type        string    `gorm:"type:text;not null;default:'system'" json:"type"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
}
