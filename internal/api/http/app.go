package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"github.com/i474232898/cy-weather-api/internal/api/docs"
	"github.com/i474232898/cy-weather-api/internal/metrics"
)

const (
	openAPIPath = "/api/openapi.json"
	docsPath    = "/api/docs"
)

// AppOptions configures the Fiber application.
type AppOptions struct {
	Name           string
	CORSOrigins    string
	EnableMetrics  bool
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// NewApp builds the Fiber app with middleware and all routes registered.
func NewApp(opts AppOptions, service WeatherService, probe ReadinessReporter) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(AccessLogMiddleware(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "*",
	}))

	if opts.EnableMetrics {
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	RegisterRoutes(app, service, probe, opts.RequestTimeout)
	registerDocs(app)
	return app
}

// registerDocs serves the OpenAPI document and the Swagger UI. /docs is kept
// as a short alias of the UI.
func registerDocs(app *fiber.App) {
	app.Get(openAPIPath, func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})
	app.Get(docsPath+"/*", swagger.New(swagger.Config{
		URL:   openAPIPath,
		Title: docs.SwaggerInfo.Title,
	}))
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect(docsPath+"/index.html", fiber.StatusMovedPermanently)
	})
}
