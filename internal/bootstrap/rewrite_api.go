package bootstrap

import (
	"strings"

	"rewrite_server/adapter/in/http"
	"rewrite_server/config"
	"rewrite_server/infra/middleware"
	"rewrite_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	return newApp(cfg, deps), cleanup, nil
}

func newApp(cfg *config.Config, deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		StrictRouting:         false,
		CaseSensitive:         false,

		// go-json: faster drop-in for encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		// Email bodies are small; anything larger is rejected with 413.
		BodyLimit: cfg.BodyLimit,

		ServerHeader:       "",
		DisableDefaultDate: true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())         // 1. Panic recovery
	app.Use(middleware.RequestID())       // 2. Request ID
	app.Use(middleware.SecurityHeaders()) // 3. Security headers
	app.Use(middleware.RequestLogger())   // 4. Request logging

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The Outlook add-in calls from its own origin.
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		// Only browser preflights are answered here; any other OPTIONS
		// falls through to the handler's 405.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions &&
				c.Get(fiber.HeaderAccessControlRequestMethod) == ""
		},
		AllowOrigins:  allowOrigins,
		AllowMethods:  "POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        86400,
	}))

	http.NewHealthHandler(deps.RewriteService).Register(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	http.NewRewriteHandler(deps.RewriteService).Register(app)

	return app
}
