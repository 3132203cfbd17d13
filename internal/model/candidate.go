package model

import "github.com/google/uuid"

// EditableCandidateInfo is part of candidate profile that owner can edit
type EditableCandidateInfo struct {
	Name   string `gorm:"type:text" json:"name"`
	CVLink string `gorm:"type:text" json:"cv_link"`
}

// Candidate is the profile extension of a candidate identity.
type Candidate struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;<-:create" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableCandidateInfo
}
