package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/controllers"
	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/services"
)

// RegisterRoutes wires all controllers onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, classifier services.Classifier, storage *services.Storage, conf config.Config) {
	userController := controllers.NewUserController(db)
	oauthController := controllers.NewOAuthController(db, conf.FrontendURL)
	diaryController := controllers.NewDiaryController(db, classifier, storage)
	storageController := controllers.NewStorageController(storage)

	// User routes
	users := r.Group("/users")
	{
		users.POST("/signup", userController.SignUp)
		users.POST("/signin", userController.SignIn)
		users.POST("/logout", userController.Logout)
		users.GET("/checkemail/:email", userController.CheckEmail)
		users.GET("/checkusername/:username", userController.CheckUsername)
		users.GET("/me", middleware.AuthMiddleware(), userController.Me)
	}

	// Google OAuth
	r.GET("/google/login", oauthController.GoogleLogin)
	r.GET("/google/callback", oauthController.GoogleCallback)

	// Diary reads accept anonymous callers; visibility filtering happens
	// inside the controller.
	r.GET("/", middleware.OptionalAuthMiddleware(), diaryController.List)
	r.GET("/:id", middleware.OptionalAuthMiddleware(), diaryController.Get)
	r.GET("/download/:id", middleware.OptionalAuthMiddleware(), diaryController.Download)

	// Mutations and storage URLs require a session.
	private := r.Group("/")
	private.Use(middleware.AuthMiddleware())
	{
		private.POST("/", diaryController.Create)
		private.PUT("/:id", diaryController.Update)
		private.DELETE("/:id", diaryController.Delete)
		private.DELETE("/", diaryController.DeleteAll)
		private.GET("/presigned-url", storageController.GetPresignedURL)
		private.GET("/download-url", storageController.GetDownloadURL)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
