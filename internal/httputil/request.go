package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"

	"github.com/budgetproject/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// URL returns the absolute URL for the path below the base URL
// of the instance.
func URL(c *gin.Context, elem ...string) string {
	base, err := url.Parse(c.GetString(string(models.DBContextURL)))
	if err != nil {
		return ""
	}

	return base.JoinPath(elem...).String()
}
