package model

import "time"

// BotStats holds per-bot activity statistics, computed for a target date.
type BotStats struct {
	BotID              string     `json:"bot_id"`
	BotName            string     `json:"bot_name"`
	TotalUsers         int64      `json:"total_users"`
	DailyActiveUsers   int64      `json:"daily_active_users"`
	WeeklyActiveUsers  int64      `json:"weekly_active_users"`
	MonthlyActiveUsers int64      `json:"monthly_active_users"`
	NewUsersToday      int64      `json:"new_users_today"`
	TotalInteractions  int64      `json:"total_interactions"`
	LastInteraction    *time.Time `json:"last_interaction,omitempty"`
}

// GlobalStats holds cross-bot statistics for a target date. Most and least
// active bot are nil when no bot had any interaction that day.
type GlobalStats struct {
	TotalBots              int64   `json:"total_bots"`
	ActiveBots             int64   `json:"active_bots"`
	TotalUsersAcrossBots   int64   `json:"total_users_across_bots"`
	TotalInteractionsToday int64   `json:"total_interactions_today"`
	MostActiveBot          *string `json:"most_active_bot,omitempty"`
	LeastActiveBot         *string `json:"least_active_bot,omitempty"`
}

// ActivityPoint is one calendar day of a bot's activity timeline.
type ActivityPoint struct {
	Date              string `json:"date"`
	UniqueUsers       int64  `json:"unique_users"`
	TotalInteractions int64  `json:"total_interactions"`
}
