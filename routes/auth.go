package routes

import (
	"github.com/gofiber/fiber/v2"

	auth_handlers "akis.link/handlers/auth"
	"akis.link/middlewares"
)

// registerAuthRoutes /auth altındaki kayıt ve oturum rotalarını tanımlar.
func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register) // POST /auth/register
	authGroup.Post("/login", authHandler.Login)       // POST /auth/login

	// Profil oturum gerektirir
	authGroup.Get("/profile", middlewares.AuthMiddleware, authHandler.Profile) // GET /auth/profile
}
