package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/controllers"
	"github.com/meinhoongagan/healthy-alternative/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(api fiber.Router, ac *controllers.AuthController, sessions *middleware.Sessions) {
	auth := api.Group("/auth")

	// Public routes
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)
	// clears the cookie even when the session is already gone
	auth.Post("/logout", ac.Logout)

	// Protected routes
	auth.Get("/me", sessions.RequireAuth(), middleware.Authed(ac.Me))
	auth.Put("/password", sessions.RequireAuth(), middleware.Authed(ac.ChangePassword))
}
