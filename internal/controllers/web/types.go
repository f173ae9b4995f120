package web

import (
	"github.com/budgetproject/backend/internal/store"
	"github.com/budgetproject/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ProjectForm is the form data for the creation of a project.
type ProjectForm struct {
	Name             string `form:"name" binding:"required,max=255"`
	Budget           string `form:"budget" binding:"required"`
	CategoriesString string `form:"categoriesString"` // Comma separated category names
}

// input parses the form into the input for the store.
func (f ProjectForm) input() (store.ProjectInput, error) {
	budget, err := decimal.NewFromString(f.Budget)
	if err != nil {
		return store.ProjectInput{}, errBudgetInvalid
	}

	return store.ProjectInput{
		Name:       f.Name,
		Budget:     budget,
		Categories: types.SplitCategories(f.CategoriesString),
	}, nil
}

// ExpenseForm is the form data for the creation of an expense.
type ExpenseForm struct {
	Title    string `form:"title" binding:"required,max=255"`
	Amount   string `form:"amount" binding:"required"`
	Category string `form:"category" binding:"required"` // Name of the category
}

// input parses the form into the input for the store.
func (f ExpenseForm) input() (store.ExpenseInput, error) {
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return store.ExpenseInput{}, errAmountInvalid
	}

	return store.ExpenseInput{
		Title:    f.Title,
		Amount:   amount,
		Category: f.Category,
	}, nil
}

// ExpenseDelete is the JSON body to delete an expense.
type ExpenseDelete struct {
	ID uint `json:"id" example:"3"` // ID of the expense
}
