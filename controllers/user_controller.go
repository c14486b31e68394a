package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/models"
)

// UserController handles local credential flows.
type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// SignUp registers a local account. Duplicate email or username answers 409
// straight off the store's unique constraints.
func (uc *UserController) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hash),
		Username: req.Username,
		Role:     role,
		Hobby:    req.Hobby,
	}

	if err := uc.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email or username already in use"})
			return
		}
		config.Logger.Errorw("user create failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "signup completed",
		"user":    models.NewUserResponse(&user),
	})
}

// SignIn verifies credentials from the form body (username carries the
// email) and sets the session cookie.
func (uc *UserController) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.Where("email = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "password does not match"})
		return
	}

	token, err := generateSessionToken(&user)
	if err != nil {
		config.Logger.Errorw("token generation failed", "error", err, "userID", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message":  "signin succeeded",
		"username": user.Username,
	})
}

// Me returns the authenticated caller's profile.
func (uc *UserController) Me(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": models.NewUserResponse(&user)})
}

// Logout clears the session cookie. The token itself stays valid until its
// embedded expiry; there is no server-side revocation.
func (uc *UserController) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckEmail answers 409 when the email is already registered.
func (uc *UserController) CheckEmail(c *gin.Context) {
	uc.checkAvailability(c, "email", c.Param("email"))
}

// CheckUsername answers 409 when the username is already taken.
func (uc *UserController) CheckUsername(c *gin.Context) {
	uc.checkAvailability(c, "username", c.Param("username"))
}

func (uc *UserController) checkAvailability(c *gin.Context, column, value string) {
	var count int64
	if err := uc.db.Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": column + " already in use"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": column + " is available"})
}
