package main

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	appcfg "github.com/RayyanKhan4004/PEMPAK-api/config"
	"github.com/RayyanKhan4004/PEMPAK-api/database"
	mw "github.com/RayyanKhan4004/PEMPAK-api/middlewares"
	"github.com/RayyanKhan4004/PEMPAK-api/route"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration error")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		if err := db.Disconnect(ctx); err != nil {
			logrus.WithError(err).Warn("mongodb disconnect failed")
		}
	}()

	store, err := newStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize image store")
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "https://")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(mw.SecureHeaders())
	router.Use(mw.Timeout())

	rateLimit := mw.NewRateLimiter(1000, time.Minute)
	router.Use(rateLimit.Middleware())

	route.Register(router, db, store, cfg.JWTSecret)

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func newStore(ctx context.Context, cfg *appcfg.Config) (storage.Store, error) {
	switch cfg.StorageProvider {
	case appcfg.ProviderS3:
		return storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
	default:
		return storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret), nil
	}
}
