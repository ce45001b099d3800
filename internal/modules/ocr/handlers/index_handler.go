package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var indexHTML []byte

// IndexHandler serves the upload demo page
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

// GetIndex godoc
// @Summary Upload page
// @Description HTML form that posts an image to /ocr
// @Tags OCR
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *IndexHandler) GetIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexHTML)
}
