package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/budgetproject/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errBudgetInvalid = errors.New("the budget must be a number")
	errAmountInvalid = errors.New("the amount must be a number")
)

// validationErrorToText converts a validation error for a form field to a
// message that can be shown to users.
func validationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// bindError returns a user friendly error for errors that occur
// when binding form data.
func bindError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, validationErrorToText(e))
	}

	return errors.New(strings.Join(messages, ", "))
}
