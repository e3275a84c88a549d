package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"shopapi/config"
	"shopapi/database"
	itemRoutes "shopapi/routers/itemRoutes"
	reviewRoutes "shopapi/routers/reviewRoutes"
	systemRoutes "shopapi/routers/systemRoutes"
	userRoutes "shopapi/routers/userRoutes"
	"shopapi/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.AppConfig.MaxUploadSize) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve stored item images
	app.Static("/uploads", config.AppConfig.UploadDir)

	systemRoutes.SetupSystemRoutes(app)
	userRoutes.SetupUserRoutes(app)
	itemRoutes.SetupItemRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)

	utils.StartSchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
