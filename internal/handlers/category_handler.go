package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func triviaDB(c *gin.Context) (*gorm.DB, bool) {
	db, ok := middleware.GetDB(c)
	if !ok {
		zap.L().Error("database connection not found in request context")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db, true
}

func allCategories(db *gorm.DB) ([]models.Category, error) {
	categories := []models.Category{}
	err := db.Order("id").Find(&categories).Error
	return categories, err
}

func ListCategories(c *gin.Context) {
	db, ok := triviaDB(c)
	if !ok {
		return
	}

	categories, err := allCategories(db)
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"count":      len(categories),
	})
}

func GetCategoryQuestions(c *gin.Context) {
	categoryID, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
			return
		}
		zap.L().Error("failed to load category", zap.Uint("category_id", categoryID), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding category.")
		return
	}

	questions := []models.Question{}
	if err := db.Where("category_id = ?", category.ID).Order("id").Find(&questions).Error; err != nil {
		zap.L().Error("failed to load category questions", zap.Uint("category_id", categoryID), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving questions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  len(questions),
		"current_category": category.Type,
	})
}
