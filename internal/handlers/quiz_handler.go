package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizCategory struct {
	ID   flexInt `json:"id"`
	Type string  `json:"type"`
}

type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// PlayQuiz returns a random question the player has not seen yet, limited to
// the chosen category unless its id is 0. question is null once every
// candidate has been played.
func PlayQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Malformed JSON body.")
		return
	}
	if req.QuizCategory == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "quiz_category is required.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	if req.QuizCategory.ID < 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
		return
	}
	categoryID := uint(req.QuizCategory.ID)
	query := db.Model(&models.Question{})
	if categoryID != 0 {
		if err := db.First(&models.Category{}, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
				return
			}
			zap.L().Error("failed to load quiz category", zap.Uint("category_id", categoryID), zap.Error(err))
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding category.")
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}
	if len(req.PreviousQuestions) > 0 {
		query = query.Where("id NOT IN ?", req.PreviousQuestions)
	}

	var candidates []uint
	if err := query.Order("id").Pluck("id", &candidates).Error; err != nil {
		zap.L().Error("failed to list quiz candidates", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving questions.")
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "question": nil})
		return
	}

	var question models.Question
	if err := db.First(&question, candidates[rand.IntN(len(candidates))]).Error; err != nil {
		zap.L().Error("failed to load quiz question", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving questions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}
