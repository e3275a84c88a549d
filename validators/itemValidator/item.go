package itemValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopapi/middleware"
)

// CreateItem validator middleware
func CreateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Price       *float64 `json:"price"`
			Tax         *float64 `json:"tax"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) == 0 {
			errors["name"] = "Name is required!"
		}

		if reqData.Price == nil {
			errors["price"] = "Price is required!"
		} else if *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}

		if reqData.Tax != nil && *reqData.Tax < 0 {
			errors["tax"] = "Tax must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateItem validator middleware
func UpdateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        *string  `json:"name"`
			Description *string  `json:"description"`
			Price       *float64 `json:"price"`
			Tax         *float64 `json:"tax"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && len(strings.TrimSpace(*reqData.Name)) == 0 {
			errors["name"] = "Name must not be empty!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}

		if reqData.Tax != nil && *reqData.Tax < 0 {
			errors["tax"] = "Tax must not be negative!"
		}

		if reqData.Name == nil && reqData.Description == nil && reqData.Price == nil && reqData.Tax == nil {
			errors["body"] = "At least one field is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
