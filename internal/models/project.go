package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/budgetproject/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is the top level budget container.
//
// Categories and expenses reference their project and are deleted
// together with it.
type Project struct {
	DefaultModel
	Name   string          `json:"name" gorm:"uniqueIndex" example:"Kitchen renovation"`
	Slug   string          `json:"slug" gorm:"uniqueIndex" example:"kitchen-renovation"` // Derived from the name on every save
	Budget decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"10000"`

	// These fields are computed
	Spent        decimal.Decimal `json:"spent" gorm:"-" example:"2350.50"`     // Sum of all expenses
	Remaining    decimal.Decimal `json:"remaining" gorm:"-" example:"7649.50"` // Budget minus the spent amount
	ExpenseCount int64           `json:"expenseCount" gorm:"-" example:"4"`   // Number of expenses
}

var (
	ErrProjectNameEmpty      = errors.New("the project name must not be empty")
	ErrProjectNameNotUnique  = errors.New("a project with this name already exists")
	ErrProjectSlugNotUnique  = errors.New("the name is too similar to the name of an existing project, their addresses would be the same")
	ErrProjectBudgetNegative = errors.New("the budget of a project must not be negative")
)

// BeforeSave trims the name and derives the slug from it.
//
// Names without any letters or digits get a slug derived from
// a hash of the name.
func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrProjectNameEmpty
	}

	p.Slug = types.Slugify(p.Name)
	if p.Slug == "" {
		p.Slug = "project-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.Name)).String()[:8]
	}

	if p.Budget.IsNegative() {
		return ErrProjectBudgetNegative
	}

	return nil
}

// BeforeCreate verifies that the name is not taken yet.
//
// Names and slugs both have a unique index. The check here tells the
// two cases apart independent of which index the database reports.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Project{}).Where("name = ?", p.Name).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrProjectNameNotUnique
	}

	return nil
}

// WithCalculations computes the spent and remaining amounts as well
// as the number of expenses.
func (p Project) WithCalculations(db *gorm.DB) (Project, error) {
	var spent decimal.NullDecimal

	err := db.
		Select("SUM(amount)").
		Where("project_id = ?", p.ID).
		Table("expenses").
		Find(&spent).
		Error
	if err != nil {
		return Project{}, err
	}

	var count int64
	err = db.Model(&Expense{}).Where("project_id = ?", p.ID).Count(&count).Error
	if err != nil {
		return Project{}, err
	}

	// If no expenses are found, the value is nil
	p.Spent = decimal.Zero
	if spent.Valid {
		p.Spent = spent.Decimal
	}

	p.Remaining = p.Budget.Sub(p.Spent)
	p.ExpenseCount = count

	return p, nil
}

// Categories returns the categories of the project in creation order.
func (p Project) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category

	err := db.
		Where("project_id = ?", p.ID).
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Expenses returns the expenses of the project, newest first.
func (p Project) Expenses(db *gorm.DB) ([]Expense, error) {
	var expenses []Expense

	err := db.
		Preload("Category").
		Where("project_id = ?", p.ID).
		Order("id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// Export returns all projects with their computed fields as JSON.
func (Project) Export(db *gorm.DB) (json.RawMessage, error) {
	var projects []Project
	err := db.Order("id ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}

	for i, project := range projects {
		projects[i], err = project.WithCalculations(db)
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(&projects)
}
