package userValidator

import (
	"strings"

	"teachtech/middleware"

	"github.com/gofiber/fiber/v2"
)

var allowedDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

// SavePreferences validates the onboarding personalization body
func SavePreferences() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Grade      string `json:"grade"`
			Subject    string `json:"subject"`
			Difficulty string `json:"difficulty"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Grade
		if strings.TrimSpace(reqData.Grade) == "" {
			errors["grade"] = "Grade is required!"
		}

		// Validate Subject
		if strings.TrimSpace(reqData.Subject) == "" {
			errors["subject"] = "Subject is required!"
		}

		// Validate Difficulty
		if strings.TrimSpace(reqData.Difficulty) == "" {
			errors["difficulty"] = "Difficulty is required!"
		} else if !allowedDifficulties[strings.ToLower(strings.TrimSpace(reqData.Difficulty))] {
			errors["difficulty"] = "Difficulty must be beginner, intermediate or advanced!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Grade = strings.TrimSpace(reqData.Grade)
		reqData.Subject = strings.TrimSpace(reqData.Subject)
		reqData.Difficulty = strings.ToLower(strings.TrimSpace(reqData.Difficulty))

		c.Locals("validatedPreferences", reqData)
		return c.Next()
	}
}
