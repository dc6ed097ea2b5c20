package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile returns the curator behind the bearer token.
func GetProfile(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.Preload("Role").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
