package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/models"
	"github.com/SeongukCho/SeSAC-Diary/utils"
)

// generateSessionToken mints the JWT for a signed-in user.
func generateSessionToken(u *models.User) (string, error) {
	return utils.GenerateToken(u.Email, u.ID)
}

// setAuthCookie attaches the session token. Max-age matches the token TTL
// so the cookie and the embedded expiry lapse together.
func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(utils.TokenTTL.Seconds()), "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
}
