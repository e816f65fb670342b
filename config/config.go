package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every environment setting the server reads. It is loaded once
// in main and handed to the packages that need it; nothing reads os.Getenv
// after startup except the JWT secret, which is allowed to be absent until a
// token is actually signed or verified.
type Config struct {
	MongoURI  string
	MongoDB   string
	JWTSecret string

	StorageProvider string // "cloudinary" or "s3"

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	S3Bucket  string
	AWSRegion string

	Port    string
	AppEnv  string
	BaseURL string
}

const (
	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	cfg := &Config{
		MongoURI:            firstEnv("MONGODB_URI", "MONGODB_URL", "MONGO_URI", "MANGODB_URL"),
		MongoDB:             getEnv("MONGODB_DB", "pempak"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StorageProvider:     getEnv("STORAGE_PROVIDER", ProviderCloudinary),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		S3Bucket:            os.Getenv("BUCKET_NAME"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		Port:                getEnv("PORT", "8080"),
		AppEnv:              getEnv("APP_ENV", "development"),
		BaseURL:             os.Getenv("API_URL"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("mongo URI is not set, expected MONGODB_URI (preferred), MONGODB_URL, MONGO_URI or MANGODB_URL")
	}

	// Store credentials are checked at startup so a misconfigured deployment
	// fails fast instead of erroring on the first upload.
	switch cfg.StorageProvider {
	case ProviderCloudinary:
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, errors.New("cloudinary credentials are not configured, expected CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	case ProviderS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("s3 storage selected but BUCKET_NAME is not set")
		}
	default:
		return nil, errors.New("unknown STORAGE_PROVIDER: " + cfg.StorageProvider)
	}

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set, auth endpoints will fail until configured")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
