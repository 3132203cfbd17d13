package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created except for IsRead.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"sender_id"`
	Sender     *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"receiver_id"`
	Receiver   *User     `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	JobID      *uint     `gorm:"index;<-:create" json:"job_id"`
	Job        *Job      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Message    string    `gorm:"type:text;not null;<-:create" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	Timestamp  time.Time `gorm:"autoCreateTime;<-:create" json:"timestamp"`
}
