package models_test

import (
	"encoding/json"
	"strings"

	"github.com/budgetproject/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	name := "\t Whitespace galore!   "

	category := suite.createTestCategory(models.Category{
		Name:      name,
		ProjectID: suite.createTestProject(models.Project{}).ID,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), category.Name)
}

func (suite *TestSuiteStandard) TestCategoryNameEmpty() {
	category := models.Category{
		Name:      " ",
		ProjectID: suite.createTestProject(models.Project{}).ID,
	}

	err := models.DB.Create(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameEmpty)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerProject() {
	project := suite.createTestProject(models.Project{})
	_ = suite.createTestCategory(models.Category{ProjectID: project.ID, Name: "design"})

	// Same name for the same project fails
	err := models.DB.Create(&models.Category{ProjectID: project.ID, Name: "design"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)

	// Same name for another project works
	err = models.DB.Create(&models.Category{ProjectID: suite.createTestProject(models.Project{}).ID, Name: "design"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestCategoryProjectMissing() {
	err := models.DB.Create(&models.Category{ProjectID: 4711, Name: "design"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrReferenceInvalid)
}

func (suite *TestSuiteStandard) TestCategoryExport() {
	t := suite.T()

	project := suite.createTestProject(models.Project{})
	for _, name := range []string{"design", "development"} {
		_ = suite.createTestCategory(models.Category{ProjectID: project.ID, Name: name})
	}

	raw, err := models.Category{}.Export(models.DB)
	if err != nil {
		require.Fail(t, "category export failed", err)
	}

	var categories []models.Category
	err = json.Unmarshal(raw, &categories)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, categories, 2, "Number of categories in export is wrong")
	assert.Equal(t, project.ID, categories[0].ProjectID)
}
