package userRoutes

import (
	authControllers "teachtech/controllers/auth"
	learningControllers "teachtech/controllers/learning"
	userControllers "teachtech/controllers/user"
	"teachtech/middleware"
	learningValidators "teachtech/validators/learning"
	userValidators "teachtech/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up all routes acting on the authenticated user
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user", middleware.JWTMiddleware)

	// Current user record
	userGroup.Get("/", authControllers.GetCurrentUser)

	// Lesson completion and progress
	userGroup.Post("/progress", learningValidators.CompleteLesson(), learningControllers.CompleteLesson)
	userGroup.Get("/progress", learningControllers.GetUserProgress)

	// Dashboard projections
	userGroup.Get("/badges", learningControllers.GetUserBadges)
	userGroup.Get("/stats", learningControllers.GetUserStats)
	userGroup.Get("/modules", learningControllers.GetPersonalizedModules)

	// Onboarding personalization
	userGroup.Get("/preferences", userControllers.GetPreferences)
	userGroup.Post("/preferences", userValidators.SavePreferences(), userControllers.SavePreferences)
}
