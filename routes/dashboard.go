package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/controllers"
	"github.com/meinhoongagan/healthy-alternative/middleware"
	"github.com/meinhoongagan/healthy-alternative/models"
)

func SetupDashboardRoutes(api fiber.Router, dc *controllers.DashboardController, sessions *middleware.Sessions) {
	dashboard := api.Group("/dashboard")

	dashboard.Get("/customer",
		sessions.RequireAuth(),
		middleware.RequireRole(models.UserTypeCustomer),
		middleware.Authed(dc.GetCustomerDashboard),
	)
	dashboard.Get("/provider",
		sessions.RequireAuth(),
		middleware.RequireRole(models.UserTypeProvider),
		middleware.Authed(dc.GetProviderDashboard),
	)
	dashboard.Post("/track-view/:providerId", dc.TrackProfileView)
}
