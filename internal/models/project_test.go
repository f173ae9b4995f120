package models_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/budgetproject/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestProjectTrimWhitespaceAndSlug() {
	project := suite.createTestProject(models.Project{
		Name:   "\t Kitchen Renovation  ",
		Budget: decimal.NewFromFloat(10000),
	})

	assert.Equal(suite.T(), "Kitchen Renovation", project.Name)
	assert.Equal(suite.T(), "kitchen-renovation", project.Slug)
}

func (suite *TestSuiteStandard) TestProjectSave() {
	_ = suite.createTestProject(models.Project{Name: "project1"})

	tests := []struct {
		name    string
		project models.Project
		err     error
	}{
		{"Empty name", models.Project{Name: "  "}, models.ErrProjectNameEmpty},
		{"Negative budget", models.Project{Name: "negative", Budget: decimal.NewFromFloat(-1)}, models.ErrProjectBudgetNegative},
		{"Duplicate name", models.Project{Name: "project1"}, models.ErrProjectNameNotUnique},
		{"Duplicate name with whitespace", models.Project{Name: " project1\t"}, models.ErrProjectNameNotUnique},
		{"Duplicate slug", models.Project{Name: "Project1"}, models.ErrProjectSlugNotUnique},
		{"Duplicate slug with punctuation", models.Project{Name: "project1!"}, models.ErrProjectSlugNotUnique},
		{"Valid", models.Project{Name: "project2", Budget: decimal.NewFromFloat(10000)}, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.project).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestProjectSlug() {
	tests := []struct {
		name string
		slug string
	}{
		{"Ремонт кухни", "ремонт-кухни"},
		{"日本旅行", "日本旅行"},
		{"Crème brûlée", "creme-brulee"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			project := suite.createTestProject(models.Project{Name: tt.name})
			assert.Equal(t, tt.slug, project.Slug)
		})
	}
}

func (suite *TestSuiteStandard) TestProjectSlugWithoutLetters() {
	first := suite.createTestProject(models.Project{Name: "€€€"})
	second := suite.createTestProject(models.Project{Name: "???"})

	assert.Regexp(suite.T(), "^project-[0-9a-f]{8}$", first.Slug)
	assert.Regexp(suite.T(), "^project-[0-9a-f]{8}$", second.Slug)
	assert.NotEqual(suite.T(), first.Slug, second.Slug)

	// The slug does not change when the project is saved again
	slug := first.Slug
	require.Nil(suite.T(), models.DB.Save(&first).Error)
	assert.Equal(suite.T(), slug, first.Slug)
}

func (suite *TestSuiteStandard) TestProjectWithCalculations() {
	project := suite.createTestProject(models.Project{Budget: decimal.NewFromFloat(10000)})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})

	project, err := project.WithCalculations(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), project.Spent.IsZero(), "Spent is %s, should be 0", project.Spent)
	assert.True(suite.T(), project.Remaining.Equal(decimal.NewFromFloat(10000)))
	assert.Equal(suite.T(), int64(0), project.ExpenseCount)

	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID, Amount: decimal.NewFromFloat(1000)})
	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID, Amount: decimal.NewFromFloat(250.5)})

	project, err = project.WithCalculations(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), project.Spent.Equal(decimal.NewFromFloat(1250.5)), "Spent is %s, should be 1250.5", project.Spent)
	assert.True(suite.T(), project.Remaining.Equal(decimal.NewFromFloat(8749.5)), "Remaining is %s, should be 8749.5", project.Remaining)
	assert.Equal(suite.T(), int64(2), project.ExpenseCount)
}

func (suite *TestSuiteStandard) TestProjectWithCalculationsDBFail() {
	project := suite.createTestProject(models.Project{})
	suite.CloseDB()

	_, err := project.WithCalculations(models.DB)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestProjectCategoriesOrder() {
	project := suite.createTestProject(models.Project{})
	_ = suite.createTestCategory(models.Category{ProjectID: project.ID, Name: "design"})
	_ = suite.createTestCategory(models.Category{ProjectID: project.ID, Name: "development"})

	// A category for a different project must not show up
	_ = suite.createTestCategory(models.Category{ProjectID: suite.createTestProject(models.Project{}).ID, Name: "other"})

	categories, err := project.Categories(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "design", categories[0].Name)
	assert.Equal(suite.T(), "development", categories[1].Name)
}

func (suite *TestSuiteStandard) TestProjectExpensesNewestFirst() {
	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID, Name: "development"})

	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: "first"})
	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID, Title: "second"})

	expenses, err := project.Expenses(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), expenses, 2)
	assert.Equal(suite.T(), "second", expenses[0].Title)
	assert.Equal(suite.T(), "first", expenses[1].Title)
	assert.Equal(suite.T(), "development", expenses[0].Category.Name, "Category is not preloaded")
}

func (suite *TestSuiteStandard) TestProjectDeleteCascades() {
	project := suite.createTestProject(models.Project{})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})
	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID})

	err := models.DB.Delete(&project).Error
	require.Nil(suite.T(), err)

	var categories, expenses int64
	require.Nil(suite.T(), models.DB.Model(&models.Category{}).Count(&categories).Error)
	require.Nil(suite.T(), models.DB.Model(&models.Expense{}).Count(&expenses).Error)
	assert.Equal(suite.T(), int64(0), categories)
	assert.Equal(suite.T(), int64(0), expenses)
}

func (suite *TestSuiteStandard) TestProjectExport() {
	t := suite.T()

	for i := range 2 {
		_ = suite.createTestProject(models.Project{Name: fmt.Sprintf("project%d", i)})
	}

	raw, err := models.Project{}.Export(models.DB)
	if err != nil {
		require.Fail(t, "project export failed", err)
	}

	var projects []models.Project
	err = json.Unmarshal(raw, &projects)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, projects, 2, "Number of projects in export is wrong")
	assert.Equal(t, "project0", projects[0].Name)
}

func (suite *TestSuiteStandard) TestProjectExportCalculations() {
	t := suite.T()

	project := suite.createTestProject(models.Project{Budget: decimal.NewFromFloat(1000)})
	category := suite.createTestCategory(models.Category{ProjectID: project.ID})
	_ = suite.createTestExpense(models.Expense{ProjectID: project.ID, CategoryID: category.ID, Amount: decimal.NewFromFloat(150)})

	raw, err := models.Project{}.Export(models.DB)
	require.Nil(t, err)

	var projects []models.Project
	require.Nil(t, json.Unmarshal(raw, &projects))
	require.Len(t, projects, 1)

	assert.True(t, projects[0].Spent.Equal(decimal.NewFromFloat(150)), "Spent is %s, should be 150", projects[0].Spent)
	assert.True(t, projects[0].Remaining.Equal(decimal.NewFromFloat(850)), "Remaining is %s, should be 850", projects[0].Remaining)
	assert.Equal(t, int64(1), projects[0].ExpenseCount)
}
