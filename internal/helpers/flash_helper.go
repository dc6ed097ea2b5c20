package helpers

import (
	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a message for the next page rendered after a redirect.
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// PopFlash returns and clears the pending flash message, if any.
func PopFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
