package models

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Category groups the expenses of a project.
type Category struct {
	DefaultModel
	Project   Project `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProjectID uint    `json:"projectId" gorm:"uniqueIndex:category_project_name" example:"1"` // ID of the project the category belongs to
	Name      string  `json:"name" gorm:"uniqueIndex:category_project_name" example:"design"`
}

var (
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the project")
)

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}

// Export returns all categories as JSON.
func (Category) Export(db *gorm.DB) (json.RawMessage, error) {
	var categories []Category
	err := db.Order("id ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&categories)
}
