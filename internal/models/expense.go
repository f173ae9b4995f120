package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is an amount spent on a project, attributed to one of
// the project's categories.
type Expense struct {
	DefaultModel
	Project    Project         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProjectID  uint            `json:"projectId" gorm:"index" example:"1"`
	Title      string          `json:"title" example:"Tiles"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1000"`
	Category   Category        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID uint            `json:"categoryId" gorm:"index" example:"2"`
}

var (
	ErrExpenseTitleEmpty        = errors.New("the expense title must not be empty")
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")
	ErrCategoryProjectMismatch  = errors.New("the category does not belong to the project of the expense")
)

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)

	if e.Title == "" {
		return ErrExpenseTitleEmpty
	}

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	return nil
}

// BeforeCreate verifies that the category exists and belongs to
// the same project as the expense.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	var category Category
	err := tx.First(&category, e.CategoryID).Error
	if err != nil {
		return err
	}

	if category.ProjectID != e.ProjectID {
		return ErrCategoryProjectMismatch
	}

	return nil
}

// Export returns all expenses as JSON.
func (Expense) Export(db *gorm.DB) (json.RawMessage, error) {
	var expenses []Expense
	err := db.Order("id ASC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&expenses)
}
