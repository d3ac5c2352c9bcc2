package userController

import (
	"errors"
	"log"

	"teachtech/database"
	"teachtech/middleware"
	"teachtech/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetPreferences returns the user's onboarding personalization record.
// Users who have not completed onboarding get completed_onboarding=false.
func GetPreferences(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var pref models.UserPreference
	err := database.Database.Db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{UserID: userID, CompletedOnboarding: false}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No preferences saved yet.", pref)
	}
	if err != nil {
		log.Printf("Error fetching preferences for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences fetched successfully!", pref)
}

// SavePreferences upserts the user's personalization choices and marks
// onboarding as completed
func SavePreferences(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPreferences").(*struct {
		Grade      string `json:"grade"`
		Subject    string `json:"subject"`
		Difficulty string `json:"difficulty"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var pref models.UserPreference
	err := db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{UserID: userID}
	} else if err != nil {
		log.Printf("Error fetching preferences for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save preferences!", nil)
	}

	pref.Grade = reqData.Grade
	pref.Subject = reqData.Subject
	pref.Difficulty = reqData.Difficulty
	pref.CompletedOnboarding = true

	if err := db.Save(&pref).Error; err != nil {
		log.Printf("Error saving preferences for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences saved successfully!", pref)
}
