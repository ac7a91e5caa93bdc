package mockinteractionrepository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bot-analytics-service/internal/model"
	"bot-analytics-service/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.InteractionRepository = &Repository{}

func (m *Repository) Create(ctx context.Context, in model.UserInteraction) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *Repository) CreateBatch(ctx context.Context, ins []model.UserInteraction) error {
	args := m.Called(ctx, ins)
	return args.Error(0)
}

func (m *Repository) BotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error) {
	args := m.Called(ctx, botID, target)
	return args.Get(0).(model.BotStats), args.Error(1)
}

func (m *Repository) GlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(model.GlobalStats), args.Error(1)
}

func (m *Repository) ActivityTimeline(ctx context.Context, botID string, target time.Time, days int) ([]model.ActivityPoint, error) {
	args := m.Called(ctx, botID, target, days)
	if v := args.Get(0); v != nil {
		return v.([]model.ActivityPoint), args.Error(1)
	}
	return nil, args.Error(1)
}
