package mockvalidator

import (
	"github.com/stretchr/testify/mock"

	"bot-analytics-service/internal/telegram"
)

type Validator struct {
	mock.Mock
}

var _ telegram.TokenValidator = &Validator{}

func (m *Validator) Validate(token string) (telegram.BotInfo, error) {
	args := m.Called(token)
	return args.Get(0).(telegram.BotInfo), args.Error(1)
}
