package learningController

import (
	"errors"
	"log"

	"teachtech/database"
	"teachtech/gamification"
	"teachtech/middleware"

	"github.com/gofiber/fiber/v2"
)

// CompleteLesson marks a lesson as completed for the authenticated user and
// runs the gamification workflow (XP credit, level, badges, module
// completion). A replayed completion returns success without changing state.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		ModuleID uint `json:"module_id"`
		LessonID uint `json:"lesson_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	engine := gamification.NewEngine(database.Database.Db)
	result, err := engine.CompleteLesson(userID, reqData.ModuleID, reqData.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, gamification.ErrLessonNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		case errors.Is(err, gamification.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		default:
			log.Printf("Error completing lesson %d for user %d: %v", reqData.LessonID, userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
		}
	}

	if result.AlreadyCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", result)
}

// GetUserProgress lists all progress records for the authenticated user
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	engine := gamification.NewEngine(database.Database.Db)
	progress, err := engine.ProgressList(userID)
	if err != nil {
		log.Printf("Error fetching progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// GetUserBadges lists every catalog badge with the user's earn state
func GetUserBadges(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	engine := gamification.NewEngine(database.Database.Db)
	badges, err := engine.BadgeList(userID)
	if err != nil {
		log.Printf("Error fetching badges for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", badges)
}

// GetUserStats returns the dashboard summary for the authenticated user
func GetUserStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	engine := gamification.NewEngine(database.Database.Db)
	stats, err := engine.Stats(userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		log.Printf("Error fetching stats for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}

// GetPersonalizedModules lists modules matching the user's onboarding
// preferences, annotated with completion counters
func GetPersonalizedModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	engine := gamification.NewEngine(database.Database.Db)
	modules, err := engine.PersonalizedModules(userID)
	if err != nil {
		log.Printf("Error fetching personalized modules for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}
