package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/controllers"
	"github.com/meinhoongagan/healthy-alternative/middleware"
)

// SetupAppointmentRoutes configures booking. Guests may book; a signed-in
// customer's bookings are linked to their account.
func SetupAppointmentRoutes(api fiber.Router, bc *controllers.BookingController, sessions *middleware.Sessions) {
	appointment := api.Group("/appointments")
	appointment.Post("/", sessions.OptionalAuth(), bc.CreateAppointment)
}
