package models_test

import (
	"encoding/json"
	"testing"

	"github.com/budgetproject/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})

	expense := suite.createTestExpense(models.Expense{
		ProjectID:  project.ID,
		CategoryID: category.ID,
		Title:      "  expense1 ",
	})

	assert.Equal(suite.T(), "expense1", expense.Title)
}

func (suite *TestSuiteStandard) TestExpenseCreate() {
	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})

	otherProject := suite.createTestProject(models.Project{})
	otherCategory := suite.createTestCategory(models.Category{ProjectID: otherProject.ID})

	tests := []struct {
		name    string
		expense models.Expense
		err     error
	}{
		{
			"Valid",
			models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: "expense1", Amount: decimal.NewFromFloat(1000)},
			nil,
		},
		{
			"Empty title",
			models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: " ", Amount: decimal.NewFromFloat(1000)},
			models.ErrExpenseTitleEmpty,
		},
		{
			"Zero amount",
			models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: "expense1"},
			models.ErrExpenseAmountNotPositive,
		},
		{
			"Negative amount",
			models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: "expense1", Amount: decimal.NewFromFloat(-5)},
			models.ErrExpenseAmountNotPositive,
		},
		{
			"Category of other project",
			models.Expense{ProjectID: project.ID, CategoryID: otherCategory.ID, Title: "expense1", Amount: decimal.NewFromFloat(1000)},
			models.ErrCategoryProjectMismatch,
		},
		{
			"Category does not exist",
			models.Expense{ProjectID: project.ID, CategoryID: 4711, Title: "expense1", Amount: decimal.NewFromFloat(1000)},
			models.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.expense).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %v", err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseDeletedWithCategory() {
	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})
	expense := suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID})

	require.Nil(suite.T(), models.DB.Delete(&category).Error)

	err := models.DB.First(&models.Expense{}, expense.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "there is no expense matching your query")
}

func (suite *TestSuiteStandard) TestExpenseExport() {
	t := suite.T()

	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})
	for range 3 {
		_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID})
	}

	raw, err := models.Expense{}.Export(models.DB)
	if err != nil {
		require.Fail(t, "expense export failed", err)
	}

	var expenses []models.Expense
	err = json.Unmarshal(raw, &expenses)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, expenses, 3, "Number of expenses in export is wrong")
}
