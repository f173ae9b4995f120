// Package web implements the HTML interface to manage projects and their expenses.
package web

import (
	"net/http"
	"strings"

	"github.com/budgetproject/backend/internal/httputil"
	"github.com/budgetproject/backend/internal/models"
	"github.com/budgetproject/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// Controller serves the web interface from the projects in the store.
type Controller struct {
	Store   store.ProjectStore
	Version string // Version of the backend, used for exports
}

// RegisterRoutes registers the routes for the web interface with
// the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	// Project list
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", co.GetProjects)
	}

	// Project creation
	{
		r.OPTIONS("/add", OptionsProjectAdd)
		r.GET("/add", co.GetProjectForm)
		r.POST("/add", co.CreateProject)
	}

	// Project with slug
	{
		r.OPTIONS("/project/:slug", co.OptionsProjectDetail)
		r.GET("/project/:slug", co.GetProject)
		r.POST("/project/:slug", co.CreateExpense)
		r.DELETE("/project/:slug", co.DeleteExpense)
	}

	// Export
	{
		r.OPTIONS("/export", OptionsExport)
		r.GET("/export", co.GetExport)
	}
}

// render renders the template with the data and the values all pages need.
func render(c *gin.Context, status int, name string, data gin.H) {
	data["Template"] = name
	data["BaseURL"] = strings.TrimSuffix(c.GetString(string(models.DBContextURL)), "/")

	if _, ok := data["Title"]; !ok {
		data["Title"] = "Budget"
	}

	c.HTML(status, name, data)
}

// notFound renders the page for resources that do not exist.
func notFound(c *gin.Context, err error) {
	render(c, http.StatusNotFound, "budget/not-found.html", gin.H{
		"Title": "Not found",
		"Error": err.Error(),
	})
}

// renderError renders the error as not-found page or JSON error, depending on its type.
func renderError(c *gin.Context, err error) {
	if status(err) == http.StatusNotFound {
		notFound(c, err)
		return
	}

	httputil.NewError(c, status(err), err)
}
