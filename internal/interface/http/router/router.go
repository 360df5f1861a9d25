package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/logging"
)

// Routes is implemented by every feature handler.
type Routes interface {
	RegisterPublicRoutes(app fiber.Router)
}

// ProtectedRoutes are mounted after the session middleware. Handlers check
// the role they need themselves.
type ProtectedRoutes interface {
	RegisterProtectedRoutes(app fiber.Router)
}

type Config struct {
	CORSOrigins string
	Logger      *zap.Logger
	// Session resolves bearer tokens into a session on the request.
	Session fiber.Handler
}

// New builds the fiber app with the shared middleware, the health check and
// every handler's routes.
func New(cfg Config, handlers ...any) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "page-flow",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Logger != nil {
		app.Use(logging.Middleware(cfg.Logger))
	}
	setupCORS(app, cfg.CORSOrigins)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Server is running"})
	})

	if cfg.Session != nil {
		app.Use(cfg.Session)
	}
	for _, h := range handlers {
		if r, ok := h.(Routes); ok {
			r.RegisterPublicRoutes(app)
		}
	}
	for _, h := range handlers {
		if r, ok := h.(ProtectedRoutes); ok {
			r.RegisterProtectedRoutes(app)
		}
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Route not found"})
	})
	return app
}

func setupCORS(app *fiber.App, origins string) {
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// errorHandler reports routing errors and recovered panics in the API's
// JSON error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	return apperror.Respond(c, err)
}
