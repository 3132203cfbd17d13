package model

import "time"

// Verification statuses
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Verification is a document submitted by an employer for admin review.
type Verification struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployerID   uint       `gorm:"not null;index;<-:create" json:"employer_id"`
	Employer     *Employer  `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"-"`
	DocumentLink string     `gorm:"type:text;not null" json:"document_link"`
	Status       string     `gorm:"type:text;not null;default:'pending'" json:"status"`
	AdminNote    string     `gorm:"type:text" json:"admin_note"`
	VerifiedAt   *time.Time `json:"verified_at"`
	CreatedAt    time.Time  `json:"created_at"`
}
