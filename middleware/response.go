package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the uniform response envelope used by every endpoint.
func JsonResponse(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return JsonResponseWithMeta(c, statusCode, message, data, nil)
}

// JsonResponseWithMeta writes the envelope with metadata (pagination etc.) in the body.
func JsonResponseWithMeta(c *fiber.Ctx, statusCode int, message string, data interface{}, metadata interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"header": fiber.Map{
			"code":      statusCode,
			"message":   message,
			"timestamp": time.Now().Format(time.RFC3339),
		},
		"body": fiber.Map{
			"data":     data,
			"metadata": metadata,
		},
	})
}

// PaginationMeta builds list metadata for the envelope body.
func PaginationMeta(total int64, skip, limit int) fiber.Map {
	return fiber.Map{
		"total": total,
		"skip":  skip,
		"limit": limit,
	}
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, "Validation failed!", errors)
}
