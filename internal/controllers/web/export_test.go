package web_test

import (
	"encoding/json"
	"net/http"

	"github.com/budgetproject/backend/internal/controllers/web"
	"github.com/budgetproject/backend/internal/models"
	"github.com/budgetproject/backend/test"
)

func (suite *TestSuiteStandard) TestExport() {
	project := suite.createTestProject("project1", "design", "development")
	suite.createTestExpense(project, "Wireframes", 250, "design")

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/export", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response web.ExportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("GNU Terry Pratchett", response.Clacks)
	suite.Assert().Equal("0.0.0", response.Version)
	suite.Assert().False(response.CreationTime.IsZero())

	var projects []models.Project
	suite.Require().Nil(json.Unmarshal(response.Data["Project"], &projects))
	suite.Require().Len(projects, 1)
	suite.Assert().Equal("project1", projects[0].Slug)

	var categories []models.Category
	suite.Require().Nil(json.Unmarshal(response.Data["Category"], &categories))
	suite.Assert().Len(categories, 2)

	var expenses []models.Expense
	suite.Require().Nil(json.Unmarshal(response.Data["Expense"], &expenses))
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal("Wireframes", expenses[0].Title)
}

func (suite *TestSuiteStandard) TestExportDatabaseClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/export", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
