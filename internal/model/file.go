package model

// File is an uploaded binary. Content is kept in the database unless the
// object store is enabled, in which case StorageObjectName points at the object.
type File struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	Content           []byte  `json:"-"`
	Extension         string  `gorm:"type:text" json:"extension"`
	StorageObjectName *string `gorm:"type:text" json:"-"`
}
