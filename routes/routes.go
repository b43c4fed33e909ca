package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/meinhoongagan/healthy-alternative/controllers"
	"github.com/meinhoongagan/healthy-alternative/middleware"
	"github.com/meinhoongagan/healthy-alternative/services"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer is built from. Notifier, Events and
// Uploader may be nil.
type Deps struct {
	Store         store.Store
	Sessions      store.Sessions
	SessionConfig middleware.SessionConfig
	Notifier      controllers.Notifier
	Events        controllers.EventPublisher
	Uploader      controllers.PhotoUploader
	RejectOverlap bool
	BcryptCost    int
	CORSOrigins   string
	Logger        *zap.Logger
	// Ping reports backing store health for /health; nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewApp wires middleware, controllers and every route group.
func NewApp(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	origins := d.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "healthy-alternative",
		ErrorHandler: utils.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if d.Ping != nil {
			if err := d.Ping(c.UserContext()); err != nil {
				log.Warn("health check failed", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authService := services.NewAuthService(d.Store, log)
	if d.BcryptCost > 0 {
		authService.WithCost(d.BcryptCost)
	}
	sessions := middleware.NewSessions(d.Sessions, d.Store, d.SessionConfig, log)

	api := app.Group("/api")
	SetupAuthRoutes(api, controllers.NewAuthController(authService, sessions, d.Events, log), sessions)
	SetupDirectoryRoutes(api, controllers.NewDirectoryController(d.Store, d.Events, log))
	SetupAppointmentRoutes(api, controllers.NewBookingController(d.Store, d.Notifier, d.Events, d.RejectOverlap, log), sessions)
	SetupDashboardRoutes(api, controllers.NewDashboardController(d.Store, log), sessions)
	SetupApplicationRoutes(api, controllers.NewApplicationController(d.Store, d.Uploader, d.Events, log))

	return app
}
