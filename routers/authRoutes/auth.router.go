package authRoutes

import (
	controllers "teachtech/controllers/auth"
	validators "teachtech/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api")

	// Login creates the account on first use
	authGroup.Post("/login", validators.Login(), controllers.Login)
}
