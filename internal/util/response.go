package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body: status is "success", "fail"
// (client-side problem) or "error" (server-side problem). Data is always
// present, null when there is nothing to return.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Success writes a 200 success envelope.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Fail writes a fail envelope with the given HTTP status (4xx).
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Envelope{
		Status:  "fail",
		Message: message,
		Data:    nil,
	})
}

// Error writes a 500 error envelope.
func Error(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Status:  "error",
		Message: message,
		Data:    nil,
	})
}
