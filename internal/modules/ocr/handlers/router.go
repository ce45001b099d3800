package handlers

import (
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// AppConfig holds the HTTP-level settings of the service
type AppConfig struct {
	BodyLimit int
	StaticDir string
}

// NewApp builds the Fiber app with middleware and OCR routes registered
func NewApp(cfg AppConfig, ocrService *services.OCRService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Smart OCR API",
		BodyLimit: cfg.BodyLimit,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "*",
	}))

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	indexHandler := NewIndexHandler()
	healthHandler := NewHealthHandler(ocrService)
	ocrHandler := NewOCRHandler(ocrService)

	app.Get("/", indexHandler.GetIndex)
	app.Get("/health", healthHandler.GetHealth)
	app.Post("/ocr", ocrHandler.Recognize)

	return app
}
