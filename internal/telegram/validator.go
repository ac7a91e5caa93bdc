package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotInfo is the identity Telegram reports for a bot token.
type BotInfo struct {
	BotID    string
	Username string
}

// TokenValidator checks a bot token against the Telegram API.
type TokenValidator interface {
	Validate(token string) (BotInfo, error)
}

type tokenValidator struct{}

// NewTokenValidator returns a validator that calls getMe for every token.
func NewTokenValidator() TokenValidator {
	return &tokenValidator{}
}

func (v *tokenValidator) Validate(token string) (BotInfo, error) {
	// NewBotAPI performs the getMe call, so a successful construction
	// already proves the token.
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return BotInfo{}, fmt.Errorf("validate bot token: %w", err)
	}

	return BotInfo{
		BotID:    strconv.FormatInt(api.Self.ID, 10),
		Username: api.Self.UserName,
	}, nil
}
