package model

import "time"

// InteractionRequest represents incoming interaction payload. The bot is
// identified by its token, the same credential the monitored bot holds.
type InteractionRequest struct {
	BotToken        string  `json:"bot_token"`
	UserID          int64   `json:"user_id"`
	InteractionType string  `json:"interaction_type"`
	Username        *string `json:"username"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	LanguageCode    *string `json:"language_code"`
	MessageText     *string `json:"message_text"`
	Timestamp       int64   `json:"timestamp"`
}

// UserInteraction is the append-only event persisted in the database.
// The user fields are a snapshot taken at interaction time.
type UserInteraction struct {
	ID              int64
	BotID           string
	UserID          int64
	Username        *string
	FirstName       *string
	LastName        *string
	LanguageCode    *string
	InteractionType string
	Timestamp       time.Time
	MessageText     *string
}

// InteractionResult is returned to clients after an interaction is accepted.
type InteractionResult struct {
	Status string `json:"status"`
}
