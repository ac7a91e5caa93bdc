package mockbotrepository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bot-analytics-service/internal/model"
	"bot-analytics-service/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.BotRepository = &Repository{}

func (m *Repository) Create(ctx context.Context, cfg model.BotConfig) (model.BotConfig, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(model.BotConfig), args.Error(1)
}

func (m *Repository) GetByID(ctx context.Context, botID string) (*model.BotConfig, error) {
	args := m.Called(ctx, botID)
	if v := args.Get(0); v != nil {
		return v.(*model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetByToken(ctx context.Context, token string) (*model.BotConfig, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetAll(ctx context.Context) ([]model.BotConfig, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Update(ctx context.Context, cfg model.BotConfig) (*model.BotConfig, error) {
	args := m.Called(ctx, cfg)
	if v := args.Get(0); v != nil {
		return v.(*model.BotConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Delete(ctx context.Context, botID string) (bool, error) {
	args := m.Called(ctx, botID)
	return args.Bool(0), args.Error(1)
}
