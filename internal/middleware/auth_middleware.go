package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SubjectKey is the gin context key holding the authenticated identity
// subject. Handlers resolve it to a user record via the user directory.
const SubjectKey = "subject"

// JWTAuthMiddleware verifies the bearer credential and stores the identity
// subject in the request context. It never touches the database.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		subject, ok := claims["sub"].(string)
		if !ok || subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid subject in token"})
			c.Abort()
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// Subject returns the authenticated identity subject stored by
// JWTAuthMiddleware, or "" if the request was not authenticated.
func Subject(c *gin.Context) string {
	sub, exists := c.Get(SubjectKey)
	if !exists {
		return ""
	}
	s, _ := sub.(string)
	return s
}
