package routes

import (
	"bot-analytics-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, analytics controller.AnalyticsController) {
	app.Post("/interactions", analytics.TrackInteraction)

	app.Post("/bots", analytics.CreateBot)
	app.Get("/bots", analytics.ListBots)
	app.Get("/bots/:id", analytics.GetBot)
	app.Patch("/bots/:id", analytics.UpdateBot)
	app.Delete("/bots/:id", analytics.DeleteBot)

	app.Get("/bots/:id/stats", analytics.GetBotStats)
	app.Get("/bots/:id/timeline", analytics.GetActivityTimeline)
	app.Get("/global-stats", analytics.GetGlobalStats)
}
