package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bot-analytics-service/internal/model"
	"bot-analytics-service/internal/repository"
	"bot-analytics-service/internal/telegram"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrUnknownBot marks interactions referencing a token no configuration
// matches. Surfaced to the caller instead of silently dropping the event.
var ErrUnknownBot = errors.New("unknown bot")

// AnalyticsService wires bot management, interaction tracking and the
// statistics queries together.
type AnalyticsService interface {
	AddBot(ctx context.Context, req model.BotCreateRequest) (model.BotConfig, error)
	GetBot(ctx context.Context, botID string) (*model.BotConfig, error)
	ListBots(ctx context.Context) ([]model.BotConfig, error)
	UpdateBot(ctx context.Context, botID string, req model.BotUpdateRequest) (*model.BotConfig, error)
	RemoveBot(ctx context.Context, botID string) (bool, error)

	BuildInteraction(ctx context.Context, req model.InteractionRequest) (model.UserInteraction, error)
	TrackInteraction(ctx context.Context, in model.UserInteraction) model.InteractionResult

	GetBotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error)
	GetGlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error)
	GetActivityTimeline(ctx context.Context, botID string, days int) ([]model.ActivityPoint, error)
}

type analyticsService struct {
	bots            repository.BotRepository
	interactions    repository.InteractionRepository
	worker          InteractionWorker
	validator       telegram.TokenValidator
	log             zerolog.Logger
	now             func() time.Time
	futureTolerance time.Duration
}

// NewAnalyticsService constructs an analyticsService. validator may be nil,
// in which case bot tokens are accepted without a Telegram round-trip and
// missing bot ids are generated.
func NewAnalyticsService(
	bots repository.BotRepository,
	interactions repository.InteractionRepository,
	worker InteractionWorker,
	validator telegram.TokenValidator,
	log zerolog.Logger,
	futureTolerance time.Duration,
) AnalyticsService {
	return &analyticsService{
		bots:            bots,
		interactions:    interactions,
		worker:          worker,
		validator:       validator,
		log:             log.With().Str("component", "analytics_service").Logger(),
		now:             time.Now,
		futureTolerance: futureTolerance,
	}
}

func (s *analyticsService) AddBot(ctx context.Context, req model.BotCreateRequest) (model.BotConfig, error) {
	if req.Name == "" {
		return model.BotConfig{}, &ValidationError{Message: "name is required"}
	}
	if req.Token == "" {
		return model.BotConfig{}, &ValidationError{Message: "token is required"}
	}

	botID := req.BotID
	if s.validator != nil {
		info, err := s.validator.Validate(req.Token)
		if err != nil {
			return model.BotConfig{}, &ValidationError{Message: fmt.Sprintf("token rejected by telegram: %v", err)}
		}
		botID = info.BotID
	}
	if botID == "" {
		botID = uuid.NewString()
	}

	cfg := model.BotConfig{
		BotID:       botID,
		Name:        req.Name,
		Token:       req.Token,
		Description: req.Description,
		CreatedAt:   s.now(),
		IsActive:    true,
	}

	created, err := s.bots.Create(ctx, cfg)
	if err != nil {
		return model.BotConfig{}, err
	}
	s.log.Info().Str("bot_id", created.BotID).Str("name", created.Name).Msg("bot registered")
	return created, nil
}

func (s *analyticsService) GetBot(ctx context.Context, botID string) (*model.BotConfig, error) {
	return s.bots.GetByID(ctx, botID)
}

func (s *analyticsService) ListBots(ctx context.Context) ([]model.BotConfig, error) {
	return s.bots.GetAll(ctx)
}

// UpdateBot applies the mutable fields onto the stored record. Nil request
// fields keep their current value. Returns (nil, nil) for an unknown bot.
func (s *analyticsService) UpdateBot(ctx context.Context, botID string, req model.BotUpdateRequest) (*model.BotConfig, error) {
	current, err := s.bots.GetByID(ctx, botID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	return s.bots.Update(ctx, *current)
}

func (s *analyticsService) RemoveBot(ctx context.Context, botID string) (bool, error) {
	removed, err := s.bots.Delete(ctx, botID)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Info().Str("bot_id", botID).Msg("bot removed")
	}
	return removed, nil
}

// BuildInteraction validates the payload and resolves the bot token to its
// configuration record.
func (s *analyticsService) BuildInteraction(ctx context.Context, req model.InteractionRequest) (model.UserInteraction, error) {
	if req.BotToken == "" {
		return model.UserInteraction{}, &ValidationError{Message: "bot_token is required"}
	}
	if req.UserID == 0 {
		return model.UserInteraction{}, &ValidationError{Message: "user_id is required"}
	}
	if req.InteractionType == "" {
		return model.UserInteraction{}, &ValidationError{Message: "interaction_type is required"}
	}

	ts := s.now()
	if req.Timestamp != 0 {
		ts = time.Unix(req.Timestamp, 0)
		if err := ValidateTimestamp(ts, s.now(), s.futureTolerance); err != nil {
			return model.UserInteraction{}, &ValidationError{Message: err.Error()}
		}
	}

	cfg, err := s.bots.GetByToken(ctx, req.BotToken)
	if err != nil {
		return model.UserInteraction{}, err
	}
	if cfg == nil {
		return model.UserInteraction{}, ErrUnknownBot
	}

	return model.UserInteraction{
		BotID:           cfg.BotID,
		UserID:          req.UserID,
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		LanguageCode:    req.LanguageCode,
		InteractionType: req.InteractionType,
		Timestamp:       ts,
		MessageText:     req.MessageText,
	}, nil
}

// TrackInteraction hands the interaction to the batch worker. Ingestion is
// append-only and never reads before writing.
func (s *analyticsService) TrackInteraction(ctx context.Context, in model.UserInteraction) model.InteractionResult {
	s.worker.Enqueue(in)
	return model.InteractionResult{Status: "accepted"}
}

func (s *analyticsService) GetBotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error) {
	if target.IsZero() {
		target = s.now()
	}
	return s.interactions.BotStats(ctx, botID, target)
}

func (s *analyticsService) GetGlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error) {
	if target.IsZero() {
		target = s.now()
	}
	return s.interactions.GlobalStats(ctx, target)
}

func (s *analyticsService) GetActivityTimeline(ctx context.Context, botID string, days int) ([]model.ActivityPoint, error) {
	if days == 0 {
		days = defaultTimelineDays
	}
	if days < 1 || days > maxTimelineDays {
		return nil, &ValidationError{Message: fmt.Sprintf("days must be between 1 and %d", maxTimelineDays)}
	}
	return s.interactions.ActivityTimeline(ctx, botID, s.now(), days)
}

const (
	defaultTimelineDays = 7
	maxTimelineDays     = 365
)

// ValidateTimestamp ensures timestamps are not too far in the future.
func ValidateTimestamp(ts time.Time, now time.Time, tolerance time.Duration) error {
	if tolerance <= 0 {
		return nil
	}
	if ts.After(now.Add(tolerance)) {
		return errors.New("timestamp cannot be in the future")
	}
	return nil
}
