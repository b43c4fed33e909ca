package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/controllers"
)

// SetupDirectoryRoutes configures the public catalogue routes
func SetupDirectoryRoutes(api fiber.Router, dc *controllers.DirectoryController) {
	api.Get("/categories", dc.GetCategories)

	providers := api.Group("/providers")
	providers.Get("/", dc.GetProviders)
	// registered before /:id so "featured" is not taken as an id
	providers.Get("/featured", dc.GetFeaturedProviders)
	providers.Get("/:id", dc.GetProvider)
	providers.Get("/:id/services", dc.GetProviderServices)
	providers.Get("/:id/reviews", dc.GetProviderReviews)

	api.Get("/services/:id", dc.GetService)
	api.Post("/reviews", dc.CreateReview)
}
