package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
	"gorm.io/gorm"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/models"
)

// OAuthController drives the Google login flow through goth.
type OAuthController struct {
	db          *gorm.DB
	frontendURL string
}

func NewOAuthController(db *gorm.DB, frontendURL string) *OAuthController {
	return &OAuthController{db: db, frontendURL: frontendURL}
}

// GoogleLogin redirects the browser to Google's consent screen.
func (oc *OAuthController) GoogleLogin(c *gin.Context) {
	// gothic resolves the provider from this query parameter.
	q := c.Request.URL.Query()
	q.Set("provider", "google")
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GoogleCallback completes the handshake, finds or creates the local user
// and redirects back to the frontend with the session cookie set.
func (oc *OAuthController) GoogleCallback(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", "google")
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		config.Logger.Errorw("google auth failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "google authentication failed"})
		return
	}

	var user models.User
	err = oc.db.Where("email = ?", gothUser.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:    gothUser.Email,
			Username: gothUser.Name,
			Password: "", // social accounts carry no local password
			Role:     "user",
		}
		if err := oc.db.Create(&user).Error; err != nil {
			config.Logger.Errorw("oauth user create failed", "error", err, "email", gothUser.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		config.Logger.Infow("oauth user created", "userID", user.ID, "provider", "google")
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}

	token, err := generateSessionToken(&user)
	if err != nil {
		config.Logger.Errorw("token generation failed", "error", err, "userID", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	setAuthCookie(c, token)
	c.Redirect(http.StatusFound, oc.frontendURL+"/list")
}
