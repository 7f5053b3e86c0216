package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError maps store error kinds onto HTTP statuses. Anything that is not
// an apperr.Error is treated as an internal failure.
func FromError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindReference:
		status = http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDependency:
		status = http.StatusConflict
	}

	c.JSON(status, HTTPError{
		Code:    string(ae.Kind),
		Message: ae.Msg,
		Entity:  ae.Entity,
		Field:   ae.Field,
		Value:   ae.Value,
	})
}
