package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const QuestionsPerPage = 10

// flexInt decodes a JSON number or a numeric string. Anything else decodes
// to zero so that validation reports the field.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.Atoi(string(data))
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

type QuestionRequest struct {
	Question   string  `json:"question" binding:"required"`
	Answer     string  `json:"answer" binding:"required"`
	Category   flexInt `json:"category" binding:"required,min=1"`
	Difficulty flexInt `json:"difficulty" binding:"required,min=1,max=5"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

func ListQuestions(c *gin.Context) {
	page, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var total int64
	if err := db.Model(&models.Question{}).Count(&total).Error; err != nil {
		zap.L().Error("failed to count questions", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving questions.")
		return
	}

	start, end, ok := helpers.PageBounds(page, QuestionsPerPage, int(total))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "No questions on this page.")
		return
	}

	questions := []models.Question{}
	if err := db.Order("id").Offset(start).Limit(end - start).Find(&questions).Error; err != nil {
		zap.L().Error("failed to list questions", zap.Int("page", page), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving questions.")
		return
	}

	categories, err := allCategories(db)
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  total,
		"categories":       categories,
		"current_category": nil,
	})
}

func DeleteQuestion(c *gin.Context) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Question not found.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	result := db.Delete(&models.Question{}, id)
	if result.Error != nil {
		zap.L().Error("failed to delete question", zap.Uint("question_id", id), zap.Error(result.Error))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete question.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Question not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// CreateQuestion also serves searches posted here by older clients: a body
// carrying searchTerm is answered as POST /questions/search.
func CreateQuestion(c *gin.Context) {
	var asSearch searchRequest
	if err := c.ShouldBindBodyWith(&asSearch, binding.JSON); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Malformed JSON body.")
		return
	}
	if asSearch.SearchTerm != nil {
		searchQuestions(c, *asSearch.SearchTerm)
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		if validation.IsValidationError(err) {
			helpers.RespondWithError(c, http.StatusUnprocessableEntity, validation.Messages(err)[0])
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	question := models.Question{
		Question:   helpers.SanitizeText(req.Question),
		Answer:     helpers.SanitizeText(req.Answer),
		Difficulty: int(req.Difficulty),
		CategoryID: uint(req.Category),
	}
	if question.Question == "" || question.Answer == "" {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, "Question and answer must not be empty.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var total int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Category{}, question.CategoryID).Error; err != nil {
			return err
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		return tx.Model(&models.Question{}).Count(&total).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusUnprocessableEntity, "Category does not exist.")
			return
		}
		zap.L().Error("failed to create question", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create question.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"created":         question.ID,
		"total_questions": total,
	})
}

func SearchQuestions(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Malformed JSON body.")
		return
	}
	if req.SearchTerm == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "searchTerm is required.")
		return
	}
	searchQuestions(c, *req.SearchTerm)
}

func searchQuestions(c *gin.Context, term string) {
	db, ok := triviaDB(c)
	if !ok {
		return
	}

	questions := []models.Question{}
	err := db.Where("LOWER(question) LIKE ? ESCAPE '\\'", helpers.LikePattern(term)).Order("id").Find(&questions).Error
	if err != nil {
		zap.L().Error("failed to search questions", zap.String("search_term", term), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error searching questions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  len(questions),
		"current_category": nil,
	})
}
