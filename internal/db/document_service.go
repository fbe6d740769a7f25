package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camgriff/feyfocus/internal/models"
	"github.com/camgriff/feyfocus/internal/tracker"
)

// DocumentStore adapts this package's functions to the tracker's Store
// interface.
type DocumentStore struct{}

func (DocumentStore) UpsertDocuments(docs []tracker.TrackedDocument) error {
	return UpsertDocuments(docs)
}

func (DocumentStore) ClearAll() error {
	return ClearAllData()
}

// UpsertDocuments saves tracked documents keyed by name: an existing row
// is updated in place, a new one inserted. Each document's project name
// is resolved to a project row first, created when absent, so a save can
// never leave a dangling or duplicate project. A failing row is skipped
// and reported; the remaining rows still save.
func UpsertDocuments(docs []tracker.TrackedDocument) error {
	var firstErr error
	failed := 0

	for _, doc := range docs {
		if err := upsertDocument(doc); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return fmt.Errorf("failed to save %d of %d documents: %w", failed, len(docs), firstErr)
	}
	return nil
}

func upsertDocument(doc tracker.TrackedDocument) error {
	var projectID *uint
	if doc.Project != "" {
		project, err := findOrCreateProject(doc.Project)
		if err != nil {
			return fmt.Errorf("failed to resolve project %q: %w", doc.Project, err)
		}
		projectID = &project.ID
	}

	var existing models.Document
	err := DB.Where("name = ?", doc.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := models.Document{
			Name:      doc.Name,
			Minutes:   doc.AccruedMinutes,
			Notes:     doc.Notes,
			ProjectID: projectID,
		}
		return DB.Create(&row).Error
	}
	if err != nil {
		return err
	}

	existing.Minutes = doc.AccruedMinutes
	existing.Notes = doc.Notes
	existing.ProjectID = projectID
	return DB.Save(&existing).Error
}

// LoadDocuments returns every stored document joined with its project
// name, in insertion order. An empty store yields an empty slice.
func LoadDocuments() ([]tracker.TrackedDocument, error) {
	var rows []models.Document
	if err := DB.Preload("Project").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]tracker.TrackedDocument, 0, len(rows))
	for _, row := range rows {
		projectName := ""
		if row.Project != nil {
			projectName = row.Project.Name
		}
		docs = append(docs, tracker.TrackedDocument{
			Name:           row.Name,
			AccruedMinutes: row.Minutes,
			Project:        projectName,
			Notes:          row.Notes,
		})
	}
	return docs, nil
}

// ClearAllData deletes every document and project row. Irreversible.
func ClearAllData() error {
	if err := DB.Where("1 = 1").Delete(&models.Document{}).Error; err != nil {
		return err
	}
	return DB.Where("1 = 1").Delete(&models.Project{}).Error
}
