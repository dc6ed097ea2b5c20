package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbKey = "db"

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped database handle.
func GetDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get(dbKey)
	if !exists {
		return nil, false
	}
	gormDB, ok := db.(*gorm.DB)
	if !ok {
		return nil, false
	}
	return gormDB.WithContext(c.Request.Context()), true
}
