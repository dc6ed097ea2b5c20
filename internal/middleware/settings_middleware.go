package middleware

import "github.com/gin-gonic/gin"

const settingsKey = "settings"

// Settings carries the configuration handlers read per request.
type Settings struct {
	UploadDir string
	JWTSecret string
}

func SettingsMiddleware(settings Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(settingsKey, settings)
		c.Next()
	}
}

func GetSettings(c *gin.Context) Settings {
	if v, exists := c.Get(settingsKey); exists {
		if s, ok := v.(Settings); ok {
			return s
		}
	}
	return Settings{}
}
