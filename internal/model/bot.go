package model

import "time"

// BotConfig is the persisted configuration record for a monitored bot.
type BotConfig struct {
	BotID       string    `json:"bot_id"`
	Name        string    `json:"name"`
	Token       string    `json:"token,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// BotCreateRequest represents incoming bot registration payload. BotID is
// optional: when token validation is enabled it is derived from Telegram.
type BotCreateRequest struct {
	BotID       string  `json:"bot_id"`
	Name        string  `json:"name"`
	Token       string  `json:"token"`
	Description *string `json:"description"`
}

// BotUpdateRequest carries the mutable subset of a bot configuration.
// Nil fields keep their current value.
type BotUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
