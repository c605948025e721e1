package handlers

import (
	"errors"
	"net/http"

	"github.com/khristian7/Irradiation-Portal/internal/api/models"
	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeInvalidInstant     = "INVALID_INSTANT"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeInvalidGranularity = "INVALID_GRANULARITY"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeRangeTooLarge      = "RANGE_TOO_LARGE"
	CodeInternal           = "INTERNAL_ERROR"
)

// requestError is a client error that already knows its API code.
type requestError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *requestError) Error() string { return e.Message }

func badRequest(code, msg string) *requestError {
	return &requestError{Code: code, Message: msg}
}

// writeError maps err to the error envelope. Coordinate and instant
// errors from the model are recognised with errors.Is.
func writeError(c *gin.Context, err error) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		abortJSON(c, http.StatusBadRequest, re.Code, re.Message, re.Details)
	case errors.Is(err, model.ErrInvalidCoordinate):
		abortJSON(c, http.StatusBadRequest, CodeInvalidCoordinate, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidInstant):
		abortJSON(c, http.StatusBadRequest, CodeInvalidInstant, err.Error(), nil)
	default:
		_ = c.Error(err)
		abortJSON(c, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred", nil)
	}
}

func abortJSON(c *gin.Context, status int, code, msg string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: msg,
			Details: details,
		},
	})
}
