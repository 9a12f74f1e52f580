package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dtroode/pawconnect-server/internal/api/http/handler"
	"github.com/dtroode/pawconnect-server/internal/api/http/middleware"
	"github.com/dtroode/pawconnect-server/internal/config"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

// Router wires handlers and middleware into a Fiber application.
type Router struct {
	authService    handler.AuthService
	avatarService  handler.AvatarService
	sessions       middleware.SessionParser
	limiter        middleware.Limiter
	store          model.Pinger
	contextManager model.ContextManager
	cfg            config.HTTP
	logger         *logger.Logger
}

// New creates a new Router. limiter may be nil to disable rate limiting.
func New(
	authService handler.AuthService,
	avatarService handler.AvatarService,
	sessions middleware.SessionParser,
	limiter middleware.Limiter,
	store model.Pinger,
	contextManager model.ContextManager,
	cfg config.HTTP,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		avatarService:  avatarService,
		sessions:       sessions,
		limiter:        limiter,
		store:          store,
		contextManager: contextManager,
		cfg:            cfg,
		logger:         logger,
	}
}

// Register builds the application with every route mounted.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pawconnect",
		BodyLimit:             r.cfg.BodyLimit,
		ErrorHandler:          handler.ErrorHandler(r.logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.NewLogging(r.logger).Handle)
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(r.cfg.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	app.Get("/health", handler.NewHealth(r.store, r.logger).Check)

	r.registerAuthRoutes(app)
	r.registerAdminRoutes(app)

	return app
}

func (r *Router) registerAuthRoutes(app *fiber.App) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	avatarHandler := handler.NewAvatar(r.avatarService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)
	limit := middleware.NewRateLimit(r.limiter, r.logger)

	auth := app.Group("/auth")
	auth.Post("/signin", limit.Handle("signin"), authHandler.SignIn)
	auth.Post("/signup", limit.Handle("signup"), authHandler.SignUp)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/resetrequest", limit.Handle("resetrequest"), authHandler.ResetRequest)
	auth.Put("/reset/:token", authHandler.ResetPassword)
	auth.Get("/user/:id/avatar", avatarHandler.Download)

	auth.Get("/me", authenticate.Handle, authHandler.Me)
	auth.Put("/user/:id/update", authenticate.Handle, authHandler.UpdateProfile)
	auth.Put("/user/:id/avatar", authenticate.Handle, avatarHandler.Upload)
	auth.Get("/users", authenticate.Handle, authenticate.RequireRole(model.RoleAdmin), authHandler.ListUsers)
}

func (r *Router) registerAdminRoutes(app *fiber.App) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	admin := app.Group("/admin", authenticate.Handle, authenticate.RequireRole(model.RoleAdmin))
	admin.Put("/user/:id/ban", authHandler.Ban)
	admin.Put("/user/:id/unban", authHandler.Unban)
}
