package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userController "shopapi/controllers/userControllers"
	"shopapi/middleware"
	userValidator "shopapi/validators/userValidator"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Post("/", userValidator.CreateUser(), userController.CreateUser)
	userGroup.Post("/login", userValidator.Login(), userController.Login)
	userGroup.Post("/bulk-upload", middleware.JWTMiddleware, userController.BulkUploadUsers)
	userGroup.Get("/", userController.ListUsers)
	userGroup.Get("/search", userController.SearchUsers)
	userGroup.Get("/email/:email", userController.GetUserByEmail)
	userGroup.Get("/:id", userController.GetUser)
	userGroup.Put("/:id", userValidator.UpdateUser(), middleware.JWTMiddleware, userController.UpdateUser)
	userGroup.Patch("/:id/password", userValidator.ChangePassword(), middleware.JWTMiddleware, userController.ChangePassword)
	userGroup.Delete("/:id", middleware.JWTMiddleware, userController.DeleteUser)
}
