package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Recognition engine
	OCRProvider        string
	OCRLanguages       string
	TesseractPath      string
	OCRSpaceAPIKey     string
	GoogleVisionAPIKey string
	OCRMaxConcurrency  int64
	OCRTimeout         time.Duration

	// Upload storage
	UploadProvider      string
	UploadDir           string
	UploadNaming        string
	UploadRetention     time.Duration
	UploadSweepSchedule string
	MaxUploadSize       int
	StaticDir           string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSS3Bucket        string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OCRProvider:        getEnv("OCR_PROVIDER", "tesseract"),
		OCRLanguages:       getEnv("OCR_LANGUAGES", "vie+eng"),
		TesseractPath:      getEnv("TESSERACT_PATH", "tesseract"),
		OCRSpaceAPIKey:     os.Getenv("OCR_SPACE_API_KEY"),
		GoogleVisionAPIKey: os.Getenv("GOOGLE_VISION_API_KEY"),
		OCRMaxConcurrency:  int64(getInt("OCR_MAX_CONCURRENCY", 1)),
		OCRTimeout:         getDuration("OCR_TIMEOUT", 2*time.Minute),

		UploadProvider:      getEnv("UPLOAD_PROVIDER", "local"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		UploadNaming:        getEnv("UPLOAD_NAMING", "uuid"),
		UploadRetention:     getDuration("UPLOAD_RETENTION", 0),
		UploadSweepSchedule: getEnv("UPLOAD_SWEEP_SCHEDULE", "@hourly"),
		MaxUploadSize:       getInt("MAX_UPLOAD_SIZE", 10*1024*1024),
		StaticDir:           getEnv("STATIC_DIR", "static"),

		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        os.Getenv("AWS_S3_BUCKET"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	if cfg.OCRMaxConcurrency < 1 {
		log.Printf("⚠️ OCR_MAX_CONCURRENCY must be >= 1, using 1")
		cfg.OCRMaxConcurrency = 1
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
