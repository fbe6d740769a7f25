package models

import (
	"time"
)

// Document is a persisted tracked document: cumulative open time in the
// monitored application, keyed by base file name.
type Document struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string  `gorm:"uniqueIndex;not null" json:"name"`
	Minutes float64 `gorm:"default:0" json:"minutes"`
	Notes   string  `json:"notes"`

	// ProjectID is nil while the document is unassigned
	ProjectID *uint `json:"project_id"`

	// Relationships
	Project *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project"`
}
