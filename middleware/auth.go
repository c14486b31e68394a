package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/SeongukCho/SeSAC-Diary/utils"
)

// AccessTokenCookie is the session cookie name.
const AccessTokenCookie = "access_token"

// AuthMiddleware requires a valid session token cookie. An expired token
// answers 403, any other verification failure 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token cookie missing"})
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("uid", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the caller identity when a valid token
// cookie is present and degrades to anonymous otherwise. A stale cookie
// must not break public reads.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err == nil && tokenString != "" {
			if claims, err := utils.ParseToken(tokenString); err == nil {
				c.Set("uid", claims.UserID)
				c.Set("email", claims.Email)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("uid")
	if !exists {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok
}
