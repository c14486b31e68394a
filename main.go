package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SeongukCho/SeSAC-Diary/config"
	"github.com/SeongukCho/SeSAC-Diary/middleware"
	"github.com/SeongukCho/SeSAC-Diary/routes"
	"github.com/SeongukCho/SeSAC-Diary/services"
	"github.com/SeongukCho/SeSAC-Diary/utils"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	redisClient, err := config.InitRedis(conf)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	utils.InitJWT(conf.JWTSecret)
	utils.InitOAuthProviders(conf)

	classifier, err := services.NewEmotionClassifier(
		conf.EmotionAPIKey, conf.EmotionAPIEndpoint, conf.EmotionModel, redisClient,
	)
	if err != nil {
		log.Fatalf("failed to init emotion classifier: %v", err)
	}

	storage, err := services.NewStorage(context.Background(), conf)
	if err != nil {
		log.Fatalf("failed to init object storage: %v", err)
	}

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r, conf)
	routes.RegisterRoutes(r, db, classifier, storage, conf)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		config.Logger.Infow("server starting", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	config.Logger.Infow("server stopped")
}
