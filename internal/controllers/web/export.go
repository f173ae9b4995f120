package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/budgetproject/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type ExportResponse struct {
	Version      string                     `json:"version"`      // The version of the backend the export was made with
	Data         map[string]json.RawMessage `json:"data"`         // The exported data
	CreationTime time.Time                  `json:"creationTime"` // Time the export was created
	Clacks       string                     `json:"clacks"`       // This will always have the value "GNU Terry Pratchett"
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Exports all projects, categories and expenses
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httputil.HTTPError
// @Router			/export [get]
func (co Controller) GetExport(c *gin.Context) {
	data, err := co.Store.Export(c.Request.Context())
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      co.Version,
		Data:         data,
		CreationTime: time.Now(),
		Clacks:       "GNU Terry Pratchett",
	})
}
