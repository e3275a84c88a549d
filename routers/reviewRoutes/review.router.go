package reviewRoutes

import (
	"github.com/gofiber/fiber/v2"

	reviewController "shopapi/controllers/reviewControllers"
	"shopapi/middleware"
	reviewValidator "shopapi/validators/reviewValidator"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/reviews")

	reviewGroup.Post("/", reviewValidator.CreateReview(), middleware.JWTMiddleware, reviewController.CreateReview)
	reviewGroup.Get("/", reviewController.ListReviews)
	reviewGroup.Get("/:id", reviewController.GetReview)
	reviewGroup.Put("/:id", reviewValidator.UpdateReview(), middleware.JWTMiddleware, reviewController.UpdateReview)
	reviewGroup.Delete("/:id", middleware.JWTMiddleware, reviewController.DeleteReview)
}
