// Package store provides the persistence operations used by the request handlers.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/budgetproject/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStore is the persistence interface for projects, their
// categories and their expenses.
type ProjectStore interface {
	Create(ctx context.Context, in ProjectInput) (models.Project, error)
	FindBySlug(ctx context.Context, slug string) (models.Project, error)
	FindByName(ctx context.Context, name string) (models.Project, error)
	ListAll(ctx context.Context, nameGlob string) ([]models.Project, error)
	Categories(ctx context.Context, project models.Project) ([]models.Category, error)
	Expenses(ctx context.Context, project models.Project) ([]models.Expense, error)
	AddExpense(ctx context.Context, project models.Project, in ExpenseInput) (models.Expense, error)
	DeleteExpense(ctx context.Context, project models.Project, id uint) error
	Export(ctx context.Context) (map[string]json.RawMessage, error)
	Ping(ctx context.Context) error
}

// ProjectInput contains everything needed to create a project.
type ProjectInput struct {
	Name       string
	Budget     decimal.Decimal
	Categories []string // Names of the categories, created in this order
}

// ExpenseInput contains everything needed to create an expense.
type ExpenseInput struct {
	Title    string
	Amount   decimal.Decimal
	Category string // Name of a category of the project
}

// Gorm implements ProjectStore on a gorm database.
type Gorm struct {
	db *gorm.DB
}

// New returns a ProjectStore backed by the database.
func New(db *gorm.DB) Gorm {
	return Gorm{db: db}
}

// Create creates the project and its categories in a single transaction.
func (s Gorm) Create(ctx context.Context, in ProjectInput) (models.Project, error) {
	project := models.Project{
		Name:   in.Name,
		Budget: in.Budget,
	}

	err := models.Transaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		err := tx.Create(&project).Error
		if err != nil {
			return err
		}

		for _, name := range in.Categories {
			err := tx.Create(&models.Category{ProjectID: project.ID, Name: name}).Error
			if err != nil {
				return fmt.Errorf("category '%s': %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	return project.WithCalculations(s.db.WithContext(ctx))
}

// FindBySlug returns the project with the slug.
func (s Gorm) FindBySlug(ctx context.Context, slug string) (models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return models.Project{}, err
	}

	return project.WithCalculations(s.db.WithContext(ctx))
}

// FindByName returns the project with the name.
func (s Gorm) FindByName(ctx context.Context, name string) (models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&project).Error
	if err != nil {
		return models.Project{}, err
	}

	return project.WithCalculations(s.db.WithContext(ctx))
}

// ListAll returns all projects sorted by name.
//
// If nameGlob is not empty, only projects with a name matching
// the glob pattern are returned.
func (s Gorm) ListAll(ctx context.Context, nameGlob string) ([]models.Project, error) {
	db := s.db.WithContext(ctx)

	var projects []models.Project
	err := db.Order("name ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if nameGlob != "" && !glob.Glob(nameGlob, project.Name) {
			continue
		}

		project, err := project.WithCalculations(db)
		if err != nil {
			return nil, err
		}
		result = append(result, project)
	}

	return result, nil
}

// Categories returns the categories of the project in creation order.
func (s Gorm) Categories(ctx context.Context, project models.Project) ([]models.Category, error) {
	return project.Categories(s.db.WithContext(ctx))
}

// Expenses returns the expenses of the project, newest first.
func (s Gorm) Expenses(ctx context.Context, project models.Project) ([]models.Expense, error) {
	return project.Expenses(s.db.WithContext(ctx))
}

// AddExpense creates an expense for the project. The category is
// resolved by name within the categories of the project.
func (s Gorm) AddExpense(ctx context.Context, project models.Project, in ExpenseInput) (models.Expense, error) {
	var expense models.Expense

	err := models.Transaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category models.Category
		err := tx.Where("project_id = ? AND name = ?", project.ID, strings.TrimSpace(in.Category)).First(&category).Error
		if err != nil {
			return err
		}

		expense = models.Expense{
			ProjectID:  project.ID,
			CategoryID: category.ID,
			Title:      in.Title,
			Amount:     in.Amount,
		}

		return tx.Create(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// DeleteExpense deletes the expense with the ID if it belongs to the project.
func (s Gorm) DeleteExpense(ctx context.Context, project models.Project, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w expense matching your query", models.ErrResourceNotFound)
	}

	return models.Transaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var expense models.Expense
		err := tx.Where("project_id = ?", project.ID).First(&expense, id).Error
		if err != nil {
			return err
		}

		return tx.Delete(&expense).Error
	})
}

// Export returns the JSON export of all models, keyed by model name.
func (s Gorm) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	resources := make(map[string]json.RawMessage)

	for _, model := range models.Registry {
		b, err := model.Export(s.db.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		resources[reflect.TypeOf(model).Name()] = b
	}

	return resources, nil
}

// Ping verifies that the database is reachable.
func (s Gorm) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
