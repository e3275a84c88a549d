package itemRoutes

import (
	"github.com/gofiber/fiber/v2"

	itemController "shopapi/controllers/itemControllers"
	"shopapi/middleware"
	itemValidator "shopapi/validators/itemValidator"
)

func SetupItemRoutes(app *fiber.App) {
	itemGroup := app.Group("/items")

	itemGroup.Post("/", itemValidator.CreateItem(), middleware.JWTMiddleware, itemController.CreateItem)
	itemGroup.Post("/bulk-upload", middleware.JWTMiddleware, itemController.BulkUploadItems)
	itemGroup.Get("/export", itemController.ExportItems)
	itemGroup.Get("/", itemController.ListItems)
	itemGroup.Get("/search", itemController.SearchItems)
	itemGroup.Get("/:id", itemController.GetItem)
	itemGroup.Put("/:id", itemValidator.UpdateItem(), middleware.JWTMiddleware, itemController.UpdateItem)
	itemGroup.Delete("/:id", middleware.JWTMiddleware, itemController.DeleteItem)

	itemGroup.Post("/:id/images", middleware.JWTMiddleware, itemController.AddItemImage)
	itemGroup.Get("/:id/images", itemController.ListItemImages)
	itemGroup.Delete("/:id/images/:imageId", middleware.JWTMiddleware, itemController.DeleteItemImage)
}
