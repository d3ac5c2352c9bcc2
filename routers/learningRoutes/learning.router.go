package learningRoutes

import (
	controllers "teachtech/controllers/learning"
	validators "teachtech/validators/learning"

	"github.com/gofiber/fiber/v2"
)

// SetupLearningRoutes sets up the public catalog routes
func SetupLearningRoutes(app *fiber.App) {
	catalogGroup := app.Group("/api")

	// Module catalog
	catalogGroup.Get("/modules", controllers.GetAllModules)
	catalogGroup.Get("/modules/:id", validators.ModuleIDParam(), controllers.GetModuleByID)
	catalogGroup.Get("/modules/:id/lessons", validators.ModuleIDParam(), controllers.GetModuleLessons)

	// Lessons
	catalogGroup.Get("/lessons/:id", validators.LessonIDParam(), controllers.GetLessonByID)

	// Badge catalog
	catalogGroup.Get("/badges", controllers.GetAllBadges)
}
