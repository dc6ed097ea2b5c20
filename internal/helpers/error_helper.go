package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusConflict:            "Conflict",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal Server Error",
}

func HTTPStatusText(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}

// RespondWithError aborts the request with the JSON error envelope used by
// the trivia API. An empty message falls back to the status text.
func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	if customMessage == "" {
		customMessage = HTTPStatusText(statusCode)
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success: false,
		Error:   statusCode,
		Message: customMessage,
	})
}

// RenderError aborts the request with one of the HTML error pages.
func RenderError(c *gin.Context, statusCode int) {
	page := "500.html"
	switch statusCode {
	case http.StatusNotFound:
		page = "404.html"
	case http.StatusMethodNotAllowed:
		page = "405.html"
	}
	c.HTML(statusCode, page, gin.H{
		"status":  statusCode,
		"message": HTTPStatusText(statusCode),
	})
	c.Abort()
}
