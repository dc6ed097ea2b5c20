package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// Claims is the token payload issued by the login handler.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization header is missing or malformed.")
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to perform this action.")
	}
}
