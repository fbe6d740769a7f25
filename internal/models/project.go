package models

// Project groups tracked documents under a user-chosen label
type Project struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	// Relationships
	Documents []Document `gorm:"foreignKey:ProjectID" json:"-"`
}
