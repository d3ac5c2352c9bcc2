package authController

import (
	"errors"
	"log"

	"teachtech/config"
	"teachtech/database"
	"teachtech/middleware"
	"teachtech/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login authenticates a user, creating the account on first login.
// Unknown usernames are registered with the supplied password and start at
// xp=0, level=1; known usernames must present the matching password.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Username string `json:"username"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("username = ? AND is_deleted = ?", reqData.Username, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First login creates the account
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if hashErr != nil {
			log.Printf("Error hashing password: %v", hashErr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		user = models.User{
			Username: reqData.Username,
			Password: string(hashedPassword),
			XP:       0,
			Level:    1,
		}
		if createErr := db.Create(&user).Error; createErr != nil {
			log.Printf("Error saving user to database: %v", createErr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}
	} else if err != nil {
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	} else {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)) != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetCurrentUser returns the authenticated user's record
func GetCurrentUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}
