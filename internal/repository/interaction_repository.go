package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"bot-analytics-service/internal/model"
)

// UnknownBotName is reported when stats are requested for a bot that has no
// configuration record. Stats for a deleted bot are a legitimate request and
// come back zero-filled rather than as an error.
const UnknownBotName = "Unknown Bot"

// InteractionRepository defines database operations for the interaction log
// and the aggregate queries derived from it.
type InteractionRepository interface {
	// Create inserts a single interaction.
	Create(ctx context.Context, in model.UserInteraction) error

	// CreateBatch inserts multiple interactions efficiently using pgx.Batch.
	CreateBatch(ctx context.Context, ins []model.UserInteraction) error

	// BotStats computes per-bot statistics relative to target, a local
	// calendar date.
	BotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error)

	// GlobalStats computes cross-bot statistics relative to target.
	GlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error)

	// ActivityTimeline returns exactly one entry per calendar day for the
	// trailing window ending at target, oldest first, zero-filled for days
	// without activity.
	ActivityTimeline(ctx context.Context, botID string, target time.Time, days int) ([]model.ActivityPoint, error)
}

type interactionRepository struct {
	db  DB
	log zerolog.Logger
}

// NewInteractionRepository creates an InteractionRepository backed by PostgreSQL.
func NewInteractionRepository(db DB, log zerolog.Logger) InteractionRepository {
	return &interactionRepository{db: db, log: log.With().Str("component", "interaction_repository").Logger()}
}

const insertInteractionQuery = `
	INSERT INTO user_interactions (
		bot_id, user_id, username, first_name, last_name,
		language_code, interaction_type, timestamp, message_text
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

const (
	botNameQuery           = `SELECT name FROM bot_configs WHERE bot_id = $1`
	totalUsersQuery        = `SELECT COUNT(DISTINCT user_id) FROM user_interactions WHERE bot_id = $1`
	activeUsersQuery       = `SELECT COUNT(DISTINCT user_id) FROM user_interactions WHERE bot_id = $1 AND timestamp >= $2 AND timestamp < $3`
	totalInteractionsQuery = `SELECT COUNT(*) FROM user_interactions WHERE bot_id = $1`
	lastInteractionQuery   = `SELECT MAX(timestamp) FROM user_interactions WHERE bot_id = $1`

	// A user is new on the target day when their first-ever interaction
	// with this bot falls on it.
	newUsersQuery = `SELECT COUNT(*) FROM (
		SELECT user_id, MIN(timestamp) AS first_ts
		FROM user_interactions
		WHERE bot_id = $1
		GROUP BY user_id
	) firsts WHERE first_ts >= $2 AND first_ts < $3`

	totalBotsQuery         = `SELECT COUNT(*) FROM bot_configs`
	activeBotsQuery        = `SELECT COUNT(DISTINCT bot_id) FROM user_interactions WHERE timestamp >= $1 AND timestamp < $2`
	globalUsersQuery       = `SELECT COUNT(DISTINCT user_id) FROM user_interactions`
	interactionsTodayQuery = `SELECT COUNT(*) FROM user_interactions WHERE timestamp >= $1 AND timestamp < $2`

	// Ties broken by lexical bot_id so repeated queries agree on a winner.
	mostActiveBotQuery = `SELECT bot_id FROM user_interactions
		WHERE timestamp >= $1 AND timestamp < $2
		GROUP BY bot_id ORDER BY COUNT(*) DESC, bot_id ASC LIMIT 1`
	leastActiveBotQuery = `SELECT bot_id FROM user_interactions
		WHERE timestamp >= $1 AND timestamp < $2
		GROUP BY bot_id ORDER BY COUNT(*) ASC, bot_id ASC LIMIT 1`

	timelineQuery = `SELECT timestamp, user_id FROM user_interactions WHERE bot_id = $1 AND timestamp >= $2 AND timestamp < $3`
)

func (r *interactionRepository) Create(ctx context.Context, in model.UserInteraction) error {
	_, err := r.db.Exec(ctx, insertInteractionQuery,
		in.BotID,
		in.UserID,
		in.Username,
		in.FirstName,
		in.LastName,
		in.LanguageCode,
		in.InteractionType,
		in.Timestamp,
		in.MessageText,
	)
	if err != nil {
		r.log.Error().Err(err).Str("bot_id", in.BotID).Int64("user_id", in.UserID).Msg("record interaction failed")
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

func (r *interactionRepository) CreateBatch(ctx context.Context, ins []model.UserInteraction) error {
	if len(ins) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, in := range ins {
		batch.Queue(insertInteractionQuery,
			in.BotID,
			in.UserID,
			in.Username,
			in.FirstName,
			in.LastName,
			in.LanguageCode,
			in.InteractionType,
			in.Timestamp,
			in.MessageText,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range ins {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch execution error: %w", err)
		}
	}
	return nil
}

func (r *interactionRepository) BotStats(ctx context.Context, botID string, target time.Time) (model.BotStats, error) {
	day := localDayStart(target)
	dayEnd := addDays(day, 1)
	weekStart := addDays(day, -6)
	monthStart := addDays(day, -29)

	stats := model.BotStats{BotID: botID, BotName: UnknownBotName}

	err := r.db.QueryRow(ctx, botNameQuery, botID).Scan(&stats.BotName)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return stats, r.statsErr("bot name", botID, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		r.log.Warn().Str("bot_id", botID).Msg("stats requested for unknown bot")
	}

	if err := r.countRow(ctx, &stats.TotalUsers, totalUsersQuery, botID); err != nil {
		return stats, r.statsErr("total users", botID, err)
	}
	if err := r.countRow(ctx, &stats.DailyActiveUsers, activeUsersQuery, botID, day, dayEnd); err != nil {
		return stats, r.statsErr("daily active users", botID, err)
	}
	if err := r.countRow(ctx, &stats.WeeklyActiveUsers, activeUsersQuery, botID, weekStart, dayEnd); err != nil {
		return stats, r.statsErr("weekly active users", botID, err)
	}
	if err := r.countRow(ctx, &stats.MonthlyActiveUsers, activeUsersQuery, botID, monthStart, dayEnd); err != nil {
		return stats, r.statsErr("monthly active users", botID, err)
	}
	if err := r.countRow(ctx, &stats.NewUsersToday, newUsersQuery, botID, day, dayEnd); err != nil {
		return stats, r.statsErr("new users", botID, err)
	}
	if err := r.countRow(ctx, &stats.TotalInteractions, totalInteractionsQuery, botID); err != nil {
		return stats, r.statsErr("total interactions", botID, err)
	}
	if err := r.db.QueryRow(ctx, lastInteractionQuery, botID).Scan(&stats.LastInteraction); err != nil {
		return stats, r.statsErr("last interaction", botID, err)
	}

	return stats, nil
}

func (r *interactionRepository) GlobalStats(ctx context.Context, target time.Time) (model.GlobalStats, error) {
	day := localDayStart(target)
	dayEnd := addDays(day, 1)

	var stats model.GlobalStats

	if err := r.countRow(ctx, &stats.TotalBots, totalBotsQuery); err != nil {
		return stats, r.statsErr("total bots", "", err)
	}
	if err := r.countRow(ctx, &stats.ActiveBots, activeBotsQuery, day, dayEnd); err != nil {
		return stats, r.statsErr("active bots", "", err)
	}
	// Deliberately all-time while the interaction count below is date-scoped.
	if err := r.countRow(ctx, &stats.TotalUsersAcrossBots, globalUsersQuery); err != nil {
		return stats, r.statsErr("total users", "", err)
	}
	if err := r.countRow(ctx, &stats.TotalInteractionsToday, interactionsTodayQuery, day, dayEnd); err != nil {
		return stats, r.statsErr("interactions today", "", err)
	}

	most, err := r.rankedBot(ctx, mostActiveBotQuery, day, dayEnd)
	if err != nil {
		return stats, r.statsErr("most active bot", "", err)
	}
	stats.MostActiveBot = most

	least, err := r.rankedBot(ctx, leastActiveBotQuery, day, dayEnd)
	if err != nil {
		return stats, r.statsErr("least active bot", "", err)
	}
	stats.LeastActiveBot = least

	return stats, nil
}

func (r *interactionRepository) rankedBot(ctx context.Context, query string, from, to time.Time) (*string, error) {
	var botID string
	err := r.db.QueryRow(ctx, query, from, to).Scan(&botID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &botID, nil
}

func (r *interactionRepository) ActivityTimeline(ctx context.Context, botID string, target time.Time, days int) ([]model.ActivityPoint, error) {
	day := localDayStart(target)
	start := addDays(day, -(days - 1))
	end := addDays(day, 1)

	rows, err := r.db.Query(ctx, timelineQuery, botID, start, end)
	if err != nil {
		return nil, r.statsErr("activity timeline", botID, err)
	}
	defer rows.Close()

	type bucket struct {
		users        map[int64]struct{}
		interactions int64
	}
	buckets := make(map[string]*bucket, days)

	for rows.Next() {
		var ts time.Time
		var userID int64
		if err := rows.Scan(&ts, &userID); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		key := localDayStart(ts.In(target.Location())).Format(dateLayout)
		b := buckets[key]
		if b == nil {
			b = &bucket{users: make(map[int64]struct{})}
			buckets[key] = b
		}
		b.users[userID] = struct{}{}
		b.interactions++
	}
	if err := rows.Err(); err != nil {
		return nil, r.statsErr("activity timeline", botID, err)
	}

	// Dense output: one entry per day in the window, zero-filled where the
	// log has no rows.
	timeline := make([]model.ActivityPoint, 0, days)
	for d := start; d.Before(end); d = addDays(d, 1) {
		point := model.ActivityPoint{Date: d.Format(dateLayout)}
		if b := buckets[point.Date]; b != nil {
			point.UniqueUsers = int64(len(b.users))
			point.TotalInteractions = b.interactions
		}
		timeline = append(timeline, point)
	}
	return timeline, nil
}

const dateLayout = "2006-01-02"

func (r *interactionRepository) countRow(ctx context.Context, dest *int64, query string, args ...any) error {
	return r.db.QueryRow(ctx, query, args...).Scan(dest)
}

func (r *interactionRepository) statsErr(op, botID string, err error) error {
	evt := r.log.Error().Err(err)
	if botID != "" {
		evt = evt.Str("bot_id", botID)
	}
	evt.Msg(op + " query failed")
	return fmt.Errorf("%s: %w", op, err)
}
