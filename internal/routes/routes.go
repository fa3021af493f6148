package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/config"
	"github.com/example/epkadmin/internal/handlers"
	"github.com/example/epkadmin/internal/metrics"
	"github.com/example/epkadmin/internal/middleware"
)

// AuthBackend serves both the auth endpoints and session checks.
type AuthBackend interface {
	handlers.AuthService
	middleware.Authenticator
}

// Deps are the services behind the HTTP surface.
type Deps struct {
	Auth  AuthBackend
	Users handlers.AppUserService
	EPKs  handlers.EPKService
}

// NewApp creates the fiber app with the shared middleware stack.
func NewApp(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "EPK Admin",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
	}))

	return app
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, cfg *config.Config, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Auth, cfg.IsProduction())
	userHandler := handlers.NewUserHandler(deps.Users)
	epkHandler := handlers.NewEPKHandler(deps.EPKs)

	limit := middleware.NewRateLimiter(cfg.AuthRateLimitRPM).Handler()
	authenticate := middleware.Authenticate(deps.Auth)
	verified := middleware.RequireVerified()

	bulk := []fiber.Handler{}
	if cfg.BulkAdminOnly {
		bulk = append(bulk, middleware.RequireAdmin())
	}
	withBulk := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, bulk...), h)
	}

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Public routes
	api.Post("/signup", limit, authHandler.Signup)
	api.Post("/login", limit, authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Post("/forgot-password", limit, authHandler.ForgotPassword)
	api.Post("/reset-password", limit, authHandler.ResetPassword)
	api.Post("/verify-email", limit, authHandler.VerifyEmail)
	api.Post("/validate-otp", limit, authHandler.ValidateOtp)
	api.Get("/test", authHandler.Test)
	api.Get("/epks/slug/*", epkHandler.GetBySlug)

	api.Get("/protected-test", authenticate, authHandler.ProtectedTest)

	// App users
	users := api.Group("/users", authenticate, verified)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/bulk-update", withBulk(userHandler.BulkUpdate)...)
	users.Post("/bulk-delete", withBulk(userHandler.BulkDelete)...)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// EPKs
	epks := api.Group("/epks", authenticate, verified)
	epks.Get("/", epkHandler.List)
	epks.Get("/stats", epkHandler.Stats)
	epks.Get("/template", epkHandler.Template)
	epks.Post("/", epkHandler.Create)
	epks.Post("/bulk-update", withBulk(epkHandler.BulkUpdate)...)
	epks.Post("/bulk-delete", withBulk(epkHandler.BulkDelete)...)
	epks.Post("/bulk-import", withBulk(epkHandler.BulkImport)...)
	epks.Get("/:id", epkHandler.Get)
	epks.Put("/:id", epkHandler.Update)
	epks.Delete("/:id", epkHandler.Delete)
	epks.Put("/:id/publish", epkHandler.TogglePublish)
}
