package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"bot-analytics-service/internal/model"
	"bot-analytics-service/internal/repository"
	"bot-analytics-service/internal/service"
)

type AnalyticsController interface {
	CreateBot(c *fiber.Ctx) error
	ListBots(c *fiber.Ctx) error
	GetBot(c *fiber.Ctx) error
	UpdateBot(c *fiber.Ctx) error
	DeleteBot(c *fiber.Ctx) error
	TrackInteraction(c *fiber.Ctx) error
	GetBotStats(c *fiber.Ctx) error
	GetGlobalStats(c *fiber.Ctx) error
	GetActivityTimeline(c *fiber.Ctx) error
}

// analyticsController exposes HTTP handlers for bot management, interaction
// ingestion and statistics.
type analyticsController struct {
	analytics service.AnalyticsService
}

// NewAnalyticsController builds an AnalyticsController.
func NewAnalyticsController(svc service.AnalyticsService) AnalyticsController {
	return &analyticsController{analytics: svc}
}

// CreateBot registers a bot configuration.
func (h *analyticsController) CreateBot(c *fiber.Ctx) error {
	var req model.BotCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	cfg, err := h.analytics.AddBot(c.Context(), req)
	if err != nil {
		return mapServiceError(err, "failed to create bot")
	}
	return c.Status(fiber.StatusCreated).JSON(cfg)
}

func (h *analyticsController) ListBots(c *fiber.Ctx) error {
	bots, err := h.analytics.ListBots(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list bots")
	}
	if bots == nil {
		bots = []model.BotConfig{}
	}
	return c.JSON(bots)
}

func (h *analyticsController) GetBot(c *fiber.Ctx) error {
	cfg, err := h.analytics.GetBot(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch bot")
	}
	if cfg == nil {
		return fiber.NewError(fiber.StatusNotFound, "bot not found")
	}
	return c.JSON(cfg)
}

func (h *analyticsController) UpdateBot(c *fiber.Ctx) error {
	var req model.BotUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	cfg, err := h.analytics.UpdateBot(c.Context(), c.Params("id"), req)
	if err != nil {
		return mapServiceError(err, "failed to update bot")
	}
	if cfg == nil {
		return fiber.NewError(fiber.StatusNotFound, "bot not found")
	}
	return c.JSON(cfg)
}

func (h *analyticsController) DeleteBot(c *fiber.Ctx) error {
	removed, err := h.analytics.RemoveBot(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete bot")
	}
	if !removed {
		return fiber.NewError(fiber.StatusNotFound, "bot not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TrackInteraction accepts single interaction payloads.
func (h *analyticsController) TrackInteraction(c *fiber.Ctx) error {
	var req model.InteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	in, err := h.analytics.BuildInteraction(c.Context(), req)
	if err != nil {
		return mapServiceError(err, "failed to track interaction")
	}

	result := h.analytics.TrackInteraction(c.Context(), in)
	return c.Status(fiber.StatusAccepted).JSON(result)
}

func (h *analyticsController) GetBotStats(c *fiber.Ctx) error {
	target, err := parseTargetDate(c)
	if err != nil {
		return err
	}

	stats, svcErr := h.analytics.GetBotStats(c.Context(), c.Params("id"), target)
	if svcErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch bot stats")
	}
	return c.JSON(stats)
}

func (h *analyticsController) GetGlobalStats(c *fiber.Ctx) error {
	target, err := parseTargetDate(c)
	if err != nil {
		return err
	}

	stats, svcErr := h.analytics.GetGlobalStats(c.Context(), target)
	if svcErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch global stats")
	}
	return c.JSON(stats)
}

func (h *analyticsController) GetActivityTimeline(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)

	timeline, err := h.analytics.GetActivityTimeline(c.Context(), c.Params("id"), days)
	if err != nil {
		return mapServiceError(err, "failed to fetch activity timeline")
	}
	return c.JSON(timeline)
}

// parseTargetDate reads the optional ?date=YYYY-MM-DD query parameter,
// interpreted as a local calendar date. Zero value means "today".
func parseTargetDate(c *fiber.Ctx) (time.Time, error) {
	raw := utils.Trim(c.Query("date"), ' ')
	if raw == "" {
		return time.Time{}, nil
	}
	target, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return target, nil
}

func mapServiceError(err error, fallback string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return fiber.NewError(fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, service.ErrUnknownBot):
		return fiber.NewError(fiber.StatusNotFound, "unknown bot token")
	case errors.Is(err, repository.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}
