package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/camgriff/feyfocus/internal/models"
)

// GetProjects retrieves all projects
func GetProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts a new project row and returns it. Callers that
// need duplicate avoidance check the existing projects first; the
// unique index on name is the backstop.
func CreateProject(name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}

	project := models.Project{Name: name}
	if err := DB.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// findOrCreateProject resolves a project name to its row, creating it
// when absent. Guarantees at most one row per distinct name.
func findOrCreateProject(name string) (*models.Project, error) {
	var project models.Project

	err := DB.Where("name = ?", name).First(&project).Error
	if err == nil {
		return &project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Project doesn't exist, create it
	project = models.Project{Name: name}
	if err := DB.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}
