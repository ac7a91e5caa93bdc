package mockservice

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bot-analytics-service/internal/model"
)

type Service struct {
	mock.Mock
}

func (m *Service) AddBot(ctx context.Context, req model.BotCreateRequest) (model.BotConfig, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.BotConfig), args.Error(1)
}

func (m *Service) GetBot(ctx context.Context, botID string) (*model.BotConfig, error) {
	args := m.Called(ctx, botID)
	if v := args.Get(0); v != nil {
		return v.(*model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) ListBots(ctx context.Context) ([]model.BotConfig, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) UpdateBot(ctx context.Context, botID string, req model.BotUpdateRequest) (*model.BotConfig, error) {
	args := m.Called(ctx, botID, req)
	if v := args.Get(0); v != nil {
		return v.(*model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) RemoveBot(ctx context.Context, botID string) (bool, error) {
	args := m.Called(ctx, botID)
	return args.Bool(0), args.Error(1)
}

func (m *Service) BuildInteraction(ctx context.Context, req model.InteractionRequest) (model.UserInteraction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.UserInteraction), args.Error(1)
}

func (m *Service) TrackInteraction(ctx context.Context, in model.UserInteraction) model.InteractionResult {
	args := m.Called(ctx, in)
	return args.Get(0).(model.InteractionResult)
}

func (m *Service) GetBotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error) {
	args := m.Called(ctx, botID, target)
	return args.Get(0).(model.BotStats), args.Error(1)
}

func (m *Service) GetGlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(model.GlobalStats), args.Error(1)
}

func (m *Service) GetActivityTimeline(ctx context.Context, botID string, days int) ([]model.ActivityPoint, error) {
	args := m.Called(ctx, botID, days)
	if v := args.Get(0); v != nil {
		return v.([]model.ActivityPoint), args.Error(1)
	}
	return nil, args.Error(1)
}
