package handlers

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/smart-ocr/internal/core/upload"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/modules/ocr/services"
	"github.com/MuhamadAgungGumelar/smart-ocr/internal/shared/utils"
	"github.com/gofiber/fiber/v2"
)

// OCRHandler handles OCR upload requests
type OCRHandler struct {
	ocrService *services.OCRService
}

// NewOCRHandler creates a new OCR handler
func NewOCRHandler(ocrService *services.OCRService) *OCRHandler {
	return &OCRHandler{ocrService: ocrService}
}

// Recognize godoc
// @Summary Recognize text in an uploaded image
// @Description Stores the image, runs OCR and returns full text, per-line results and the mean confidence (0-100). Always answers 200; check "success".
// @Tags OCR
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} models.OCRResponse
// @Failure 200 {object} models.FailureResponse
// @Router /ocr [post]
func (h *OCRHandler) Recognize(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, &services.IntakeError{Err: fmt.Errorf("file is required: %w", err)})
	}

	data, err := upload.ReadMultipart(fileHeader)
	if err != nil {
		return h.fail(c, &services.IntakeError{Err: err})
	}

	result, err := h.ocrService.Process(c.UserContext(), upload.MultipartFilename(fileHeader), data)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(result)
}

func (h *OCRHandler) fail(c *fiber.Ctx, err error) error {
	utils.LogError("OCR request failed", err, map[string]interface{}{
		"stage": services.Stage(err),
	})
	return c.Status(fiber.StatusOK).JSON(services.NewFailureResponse(err))
}
