package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error payload. Browse and pipeline routes return
// their success payloads directly; only errors are wrapped.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Success writes 200 with the payload as-is.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest writes 400 for invalid parameters or state-guard violations.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: "bad_request", Message: message})
}

// NotFound writes 404 for a missing row.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	c.JSON(http.StatusNotFound, ErrorBody{Error: "not_found", Message: message})
}

// ServerError writes 500 with a human-readable reason.
func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "server_error", Message: message})
}
