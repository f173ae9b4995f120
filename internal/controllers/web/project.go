package web

import (
	"errors"
	"net/http"

	"github.com/budgetproject/backend/internal/httputil"
	"github.com/budgetproject/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projects
// @Success		204
// @Router			/ [options]
func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projects
// @Success		204
// @Router			/add [options]
func OptionsProjectAdd(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Projects
// @Success		204
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			slug	path	string	true	"Slug of the project"
// @Router			/project/{slug} [options]
func (co Controller) OptionsProjectDetail(c *gin.Context) {
	_, err := co.Store.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	httputil.OptionsGetPostDelete(c)
}

// @Summary		List projects
// @Description	Renders the list of all projects with their budget and the remaining amount
// @Tags			Projects
// @Produce		html
// @Success		200
// @Failure		500	{object}	httputil.HTTPError
// @Param			name	query	string	false	"Glob pattern to filter project names by"
// @Router			/ [get]
func (co Controller) GetProjects(c *gin.Context) {
	filter := c.Query("name")

	projects, err := co.Store.ListAll(c.Request.Context(), filter)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "budget/project-list.html", gin.H{
		"Title":    "Projects",
		"Projects": projects,
		"Filter":   filter,
	})
}

// @Summary		Project creation form
// @Description	Renders the form to create a project
// @Tags			Projects
// @Produce		html
// @Success		200
// @Router			/add [get]
func (co Controller) GetProjectForm(c *gin.Context) {
	render(c, http.StatusOK, "budget/project-add.html", gin.H{
		"Title": "New project",
		"Form":  ProjectForm{},
	})
}

// @Summary		Create project
// @Description	Creates a project with one category for each entry of the comma separated categoriesString
// @Description	and redirects to the project.
// @Tags			Projects
// @Accept			x-www-form-urlencoded
// @Produce		html
// @Success		302
// @Failure		400
// @Failure		500	{object}	httputil.HTTPError
// @Param			name				formData	string	true	"Name of the project"
// @Param			budget				formData	number	true	"Budget of the project"
// @Param			categoriesString	formData	string	false	"Comma separated category names"
// @Router			/add [post]
func (co Controller) CreateProject(c *gin.Context) {
	var form ProjectForm

	formError := func(err error) {
		log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("project creation")

		if status(err) == http.StatusInternalServerError {
			httputil.NewError(c, http.StatusInternalServerError, err)
			return
		}

		render(c, http.StatusBadRequest, "budget/project-add.html", gin.H{
			"Title": "New project",
			"Form":  form,
			"Error": err.Error(),
		})
	}

	err := c.ShouldBindWith(&form, binding.Form)
	if err != nil {
		formError(bindError(err))
		return
	}

	input, err := form.input()
	if err != nil {
		formError(err)
		return
	}

	project, err := co.Store.Create(c.Request.Context(), input)
	if err != nil {
		formError(err)
		return
	}

	c.Redirect(http.StatusFound, httputil.URL(c, "project", project.Slug))
}

// @Summary		Project detail
// @Description	Renders the project with its categories and expenses
// @Tags			Projects
// @Produce		html
// @Success		200
// @Failure		404
// @Failure		500	{object}	httputil.HTTPError
// @Param			slug	path	string	true	"Slug of the project"
// @Router			/project/{slug} [get]
func (co Controller) GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := co.Store.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}

	categories, err := co.Store.Categories(ctx, project)
	if err != nil {
		renderError(c, err)
		return
	}

	expenses, err := co.Store.Expenses(ctx, project)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "budget/project-detail.html", gin.H{
		"Title":      project.Name,
		"Project":    project,
		"Categories": categories,
		"Expenses":   expenses,
		"DetailURL":  httputil.URL(c, "project", project.Slug),
	})
}

// @Summary		Create expense
// @Description	Creates an expense for the project and redirects back to it.
// @Description	Invalid data is ignored and does not create an expense, the response is the same redirect.
// @Tags			Projects
// @Accept			x-www-form-urlencoded
// @Produce		html
// @Success		302
// @Failure		404
// @Failure		500	{object}	httputil.HTTPError
// @Param			slug		path		string	true	"Slug of the project"
// @Param			title		formData	string	true	"Title of the expense"
// @Param			amount		formData	number	true	"Amount of the expense"
// @Param			category	formData	string	true	"Name of the category"
// @Router			/project/{slug} [post]
func (co Controller) CreateExpense(c *gin.Context) {
	project, err := co.Store.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}

	expense, err := co.createExpense(c, project)
	if err != nil {
		event := log.Debug()
		if errors.Is(err, models.ErrGeneral) {
			event = log.Error()
		}
		event.Str("request-id", requestid.Get(c)).Str("project", project.Slug).Err(err).Msg("expense not created")
	} else {
		log.Debug().Str("request-id", requestid.Get(c)).Str("project", project.Slug).Uint("expense", expense.ID).Msg("expense created")
	}

	c.Redirect(http.StatusFound, httputil.URL(c, "project", project.Slug))
}

// createExpense creates the expense from the form data of the request.
func (co Controller) createExpense(c *gin.Context, project models.Project) (models.Expense, error) {
	var form ExpenseForm
	err := c.ShouldBindWith(&form, binding.Form)
	if err != nil {
		return models.Expense{}, bindError(err)
	}

	input, err := form.input()
	if err != nil {
		return models.Expense{}, err
	}

	return co.Store.AddExpense(c.Request.Context(), project, input)
}

// @Summary		Delete expense
// @Description	Deletes an expense of the project
// @Tags			Projects
// @Accept			json
// @Success		204
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			slug	path		string			true	"Slug of the project"
// @Param			expense	body		ExpenseDelete	true	"Expense to delete"
// @Router			/project/{slug} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := co.Store.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	// Requests that do not identify an expense are treated like
	// requests for an expense that does not exist
	var data ExpenseDelete
	err = httputil.BindData(c, &data)
	if err != nil {
		httputil.NewError(c, http.StatusNotFound, err)
		return
	}

	err = co.Store.DeleteExpense(ctx, project, data.ID)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}
