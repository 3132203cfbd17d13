package model

import (
	"time"

	"github.com/google/uuid"
)

// Review rates one identity after a completed job.
type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_triple" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_triple;index" json:"reviewee_id"`
	Reviewee   *User     `gorm:"foreignKey:RevieweeID;constraint:OnDelete:CASCADE" json:"-"`
	JobID      uint      `gorm:"not null;uniqueIndex:idx_review_triple" json:"job_id"`
	Job        *Job      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Rating     int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
