package learningController

import (
	"teachtech/database"
	"teachtech/middleware"
	learningModels "teachtech/models/learning"

	"github.com/gofiber/fiber/v2"
)

// GetAllModules lists the module catalog ordered by position
func GetAllModules(c *fiber.Ctx) error {
	var modules []learningModels.Module
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// GetModuleByID returns a single module from the catalog
func GetModuleByID(c *fiber.Ctx) error {
	moduleID, ok := c.Locals("moduleID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	var module learningModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

// GetModuleLessons lists a module's lessons ordered by position
func GetModuleLessons(c *fiber.Ctx) error {
	moduleID, ok := c.Locals("moduleID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	// Module must exist in the catalog
	var module learningModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var lessons []learningModels.Lesson
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

// GetLessonByID returns a single lesson with its content
func GetLessonByID(c *fiber.Ctx) error {
	lessonID, ok := c.Locals("lessonID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson learningModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

// GetAllBadges lists the badge catalog
func GetAllBadges(c *fiber.Ctx) error {
	var badges []learningModels.Badge
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("id asc").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", badges)
}
