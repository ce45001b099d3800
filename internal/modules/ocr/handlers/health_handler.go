package handlers

import (
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/services"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ocrService *services.OCRService
}

func NewHealthHandler(ocrService *services.OCRService) *HealthHandler {
	return &HealthHandler{ocrService: ocrService}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	storage, recognizer := h.ocrService.ProviderNames()
	return c.JSON(fiber.Map{
		"status":          "ok",
		"service":         "ocr-api",
		"ocr_provider":    recognizer,
		"upload_provider": storage,
	})
}
