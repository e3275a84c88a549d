package systemRoutes

import (
	"github.com/gofiber/fiber/v2"

	systemController "shopapi/controllers/systemControllers"
)

func SetupSystemRoutes(app *fiber.App) {
	app.Get("/health", systemController.Health)

	systemGroup := app.Group("/system")
	systemGroup.Get("/info", systemController.Info)
	systemGroup.Get("/stats", systemController.Stats)
	systemGroup.Get("/tables", systemController.Tables)
	systemGroup.Get("/tables/:name/columns", systemController.TableColumns)
	systemGroup.Get("/tables/:name/data", systemController.TableData)
}
