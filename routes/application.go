package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/controllers"
)

func SetupApplicationRoutes(api fiber.Router, ac *controllers.ApplicationController) {
	api.Post("/provider-applications", ac.SubmitApplication)
}
