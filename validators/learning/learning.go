package learningValidator

import (
	"strconv"

	"teachtech/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleIDParam validates the :id route parameter as a module id
func ModuleIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := strconv.Atoi(c.Params("id"))
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// LessonIDParam validates the :id route parameter as a lesson id
func LessonIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := strconv.Atoi(c.Params("id"))
		if err != nil || lessonID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}

		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// CompleteLesson validates the lesson completion body
func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID uint `json:"module_id"`
			LessonID uint `json:"lesson_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate ModuleID
		if reqData.ModuleID < 1 {
			errors["module_id"] = "Module id is required!"
		}

		// Validate LessonID
		if reqData.LessonID < 1 {
			errors["lesson_id"] = "Lesson id is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
