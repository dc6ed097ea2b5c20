package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/validation"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	RoleName string `json:"role_name" binding:"omitempty,oneof=admin curator"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsValidationError(err) {
			helpers.RespondWithError(c, http.StatusUnprocessableEntity, validation.Messages(err)[0])
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.RoleName == "" {
		req.RoleName = models.RoleCurator
	}
	// RoleKey is only set when the request went through JWTAuthMiddleware.
	if req.RoleName == models.RoleAdmin && c.GetString(middleware.RoleKey) != models.RoleAdmin {
		helpers.RespondWithError(c, http.StatusForbidden, "Only an admin can create admin accounts.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var role models.Role
	if err := db.Where("name = ?", req.RoleName).First(&role).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, "Invalid role.")
		return
	}

	var existingUser models.User
	if err := db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "User already exists.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("failed to look up user", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		RoleID:   role.ID,
	}

	if err := db.Omit("Role").Create(&user).Error; err != nil {
		zap.L().Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  role.Name,
		},
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, ok := triviaDB(c)
	if !ok {
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	secret := middleware.GetSettings(c).JWTSecret
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: user.ID,
		Role:   user.Role.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenString,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role.Name,
		},
	})
}
