package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patwell/ipgate/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an error to its HTTP status and writes the standard
// error body.  Internal errors are masked; callers see the code, not the
// cause.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	} else if ae, ok := err.(*errors.AppError); ok {
		message = ae.Message
	}

	c.JSON(status, ErrorResponse{Code: string(code), Message: message})
}
