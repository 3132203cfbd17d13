package model

// Category is reference data used to classify job postings.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name" yaml:"name"`
}
