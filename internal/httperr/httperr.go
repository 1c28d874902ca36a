package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
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

// WriteError renders err. Business errors get their registered status and
// message; anything else is a 500 with the error attached to the gin
// context for the request logger.
func WriteError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		status, message := Describe(be.Code)
		Write(c, status, be.Code, message)
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "unexpected error, please try again")
}
