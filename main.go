package main

import (
	"log"

	"teachtech/config"
	"teachtech/database"
	authRoutes "teachtech/routers/authRoutes"
	learningRoutes "teachtech/routers/learningRoutes"
	userRoutes "teachtech/routers/userRoutes"
	"teachtech/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := database.SeedCatalog(database.Database.Db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	learningRoutes.SetupLearningRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeBadgeScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
