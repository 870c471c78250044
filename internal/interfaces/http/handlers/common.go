// Package handlers implements the gin handlers of the keyip-mcs HTTP API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeError writes a structured error response.
func writeError(c *gin.Context, statusCode int, code errors.ErrorCode, message, detail string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Code:    code.String(),
		Message: message,
		Detail:  detail,
	})
}

// writeAppError maps application errors to HTTP status codes.  Server-side
// failures are masked.
func writeAppError(c *gin.Context, err error) {
	_ = c.Error(err)
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if status >= http.StatusInternalServerError {
		writeError(c, status, code, errors.DefaultMessageForCode(code), "")
		return
	}
	message, detail := err.Error(), ""
	if ae, ok := errors.AsAppError(err); ok {
		message, detail = ae.Message, ae.Detail
	}
	writeError(c, status, code, message, detail)
}

// bindJSON decodes the request body into out and writes a 400 on failure.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		writeError(c, http.StatusBadRequest, errors.CodeInvalidParam, "malformed request body", err.Error())
		return false
	}
	return true
}

//Personal.AI order the ending
