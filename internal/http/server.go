package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"bot-analytics-service/internal/config"
	"bot-analytics-service/internal/controller"
	"bot-analytics-service/internal/routes"
)

// Server wraps the Fiber application setup.
type Server struct {
	app *fiber.App
}

// NewServer configures routes and middleware. Every route except the health
// check requires the configured API key.
func NewServer(appCfg *config.Config, analytics controller.AnalyticsController) *Server {
	fiberCfg := fiber.Config{
		DisableStartupMessage: true,
		Prefork:               appCfg.FiberPrefork,
	}
	app := fiber.New(fiberCfg)
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(APIKeyAuth(appCfg.APIKey))

	routes.Register(app, analytics)

	return &Server{app: app}
}

// APIKeyAuth rejects requests whose X-API-Key header does not match key.
func APIKeyAuth(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid api key")
		}
		return c.Next()
	}
}

// Listen runs the server on provided addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
