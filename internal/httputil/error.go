package httputil

import (
	"github.com/gin-gonic/gin"
)

// NewError writes the error as HTTPError with the status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no project matching your query"`
}
