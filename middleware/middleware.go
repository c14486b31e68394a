package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SeongukCho/SeSAC-Diary/config"
)

// SetupMiddleware installs the shared middleware stack.
func SetupMiddleware(r *gin.Engine, conf config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{conf.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(RequestLogger())
	r.Use(gin.Recovery())
}
