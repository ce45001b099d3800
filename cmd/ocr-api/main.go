package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/upload"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/handlers"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/services"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/config"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/smart-ocr/cmd/ocr-api/docs"
)

// @title Smart OCR API
// @version 1.0
// @description Upload an image and get recognized text with per-line and aggregate confidence
// @license.name MIT
// @host localhost:8000
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init storage
	uploadProvider, err := upload.NewProvider(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload provider")
	}
	uploadService := upload.NewService(uploadProvider)

	// Init recognition engine once; every request shares it
	ocrProvider, err := ocr.NewProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OCR provider")
	}
	if closer, ok := ocrProvider.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	ocrService := ocr.NewService(ocrProvider, ocr.Options{
		MaxConcurrency: cfg.OCRMaxConcurrency,
		Timeout:        cfg.OCRTimeout,
	})

	pipeline := services.NewOCRService(uploadService, ocrService)

	utils.LogInfo("providers ready", map[string]interface{}{
		"ocr_provider":    ocrService.GetProviderName(),
		"languages":       cfg.OCRLanguages,
		"max_concurrency": ocrService.MaxConcurrency(),
		"timeout":         cfg.OCRTimeout.String(),
		"upload_provider": uploadService.GetProviderName(),
		"upload_naming":   cfg.UploadNaming,
	})

	// Retention sweeper, local storage only
	if cfg.UploadRetention > 0 {
		purger, ok := uploadProvider.(upload.Purger)
		if !ok {
			utils.LogWarn("UPLOAD_RETENTION ignored: provider cannot purge", map[string]interface{}{
				"upload_provider": uploadService.GetProviderName(),
			})
		} else {
			sweeper := upload.NewSweeper(purger, cfg.UploadRetention)
			if err := sweeper.Schedule(cfg.UploadSweepSchedule); err != nil {
				log.Fatal().Err(err).Msg("failed to schedule upload sweeper")
			}
			sweeper.Start()
			defer sweeper.Stop()
		}
	} else {
		log.Info().Msg("uploads are kept indefinitely (UPLOAD_RETENTION not set)")
	}

	app := handlers.NewApp(handlers.AppConfig{
		BodyLimit: cfg.MaxUploadSize,
		StaticDir: cfg.StaticDir,
	}, pipeline)

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msgf("ocr-api running at :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
