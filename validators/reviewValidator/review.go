package reviewValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopapi/middleware"
)

const maxContentLength = 1000

// CreateReview validator middleware
func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ItemID  uint   `json:"itemId"`
			UserID  uint   `json:"userId"`
			Content string `json:"content"`
			Score   int    `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ItemID == 0 {
			errors["itemId"] = "Item ID is required!"
		}

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}

		content := strings.TrimSpace(reqData.Content)
		if len(content) == 0 {
			errors["content"] = "Review content is required!"
		} else if len(content) > maxContentLength {
			errors["content"] = "Review content must be at most 1000 characters!"
		}

		if reqData.Score < 1 || reqData.Score > 5 {
			errors["score"] = "Score must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateReview validator middleware
func UpdateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content *string `json:"content"`
			Score   *int    `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Content != nil {
			content := strings.TrimSpace(*reqData.Content)
			if len(content) == 0 {
				errors["content"] = "Review content must not be empty!"
			} else if len(content) > maxContentLength {
				errors["content"] = "Review content must be at most 1000 characters!"
			}
		}

		if reqData.Score != nil && (*reqData.Score < 1 || *reqData.Score > 5) {
			errors["score"] = "Score must be between 1 and 5!"
		}

		if reqData.Content == nil && reqData.Score == nil {
			errors["body"] = "At least one field is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
