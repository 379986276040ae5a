package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	MaxMessageLength    int
	AllowedContentTypes []string
}

// Middleware enforces content type and message size caps on the chat and
// save endpoints before a request reaches a handler.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxMessageLength == 0 {
		cfg.MaxMessageLength = 10000
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		contentType := c.Get("Content-Type")
		if contentType != "" {
			allowed := false
			for _, allowedType := range cfg.AllowedContentTypes {
				if strings.Contains(contentType, allowedType) {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
					"detail": "Unsupported content type",
				})
			}
		}

		if strings.HasPrefix(c.Path(), "/api/chat") {
			var req map[string]interface{}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": "Invalid JSON format",
				})
			}

			message, ok := req["message"].(string)
			if !ok || message == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": "message is required and must be a string",
				})
			}

			if len(message) > cfg.MaxMessageLength {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": "message exceeds maximum length",
				})
			}
		}

		return c.Next()
	}
}
