package model

import (
	"github.com/google/uuid"
)

// EditableEmployerInfo is part of employer profile that owner can edit
type EditableEmployerInfo struct {
	Name        string       `gorm:"type:text" json:"name"`
	TaxCode     string       `gorm:"type:text" json:"tax_code"`
	Location    string       `gorm:"type:text" json:"location"`
	Coordinates *Coordinates `gorm:"type:jsonb" json:"coordinates"`
}

// Employer is the profile extension of an employer identity.
type Employer struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;<-:create" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableEmployerInfo
	Verified bool `gorm:"default:false" json:"verified"`

	Images []EmployerImage `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"images"`
}

// EmployerImage is one picture of the employer gallery.
type EmployerImage struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployerID uint `gorm:"not null;index" json:"employer_id"`
	FileID     int  `gorm:"not null" json:"file_id"`
	File       File `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"-"`
}
