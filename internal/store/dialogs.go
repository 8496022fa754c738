package store

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// InsertDialogParams captures one completed interaction.
type InsertDialogParams struct {
	UserID           int64
	TelegramID       int64
	Username         string
	Tokens           int64
	Model            string
	Status           string
	UserMessage      *string
	AssistantMessage *string
	InteractionType  string
	Now              time.Time
}

const insertDialogSQL = `
INSERT INTO dialogs (user_id, telegram_id, username, tokens, model, status,
                     user_message, assistant_message, interaction_type, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING id`

func (s *Store) InsertDialog(ctx context.Context, params InsertDialogParams) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, insertDialogSQL,
		params.UserID,
		params.TelegramID,
		params.Username,
		params.Tokens,
		params.Model,
		params.Status,
		params.UserMessage,
		params.AssistantMessage,
		params.InteractionType,
		params.Now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert dialog: %w", err)
	}
	return id, nil
}

func (s *Store) CountDialogsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM dialogs WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count dialogs by status: %w", err)
	}
	return count, nil
}

// CountDistinctActiveUsers counts telegram ids with at least one dialog in
// the [dayStart, dayEnd) range.
func (s *Store) CountDistinctActiveUsers(ctx context.Context, dayStart, dayEnd time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT telegram_id) FROM dialogs WHERE created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count distinct active users: %w", err)
	}
	return count, nil
}

// DialogFilter narrows the recent-dialog feed. Empty fields match everything.
type DialogFilter struct {
	Model  string
	Status string
	Limit  int
}

// recentDialogsQuery builds the filtered feed query with positional
// parameters only; filter values are never interpolated into the SQL.
func recentDialogsQuery(filter DialogFilter) (string, []any) {
	query := `
SELECT d.id, d.user_id, d.telegram_id, d.username, d.tokens, d.model, d.status,
       d.user_message, d.assistant_message, d.interaction_type, d.created_at, d.updated_at,
       u.name, u.premium
FROM dialogs d
JOIN users u ON d.user_id = u.id`

	args := make([]any, 0, 3)
	where := ""
	if filter.Model != "" {
		args = append(args, filter.Model)
		where = " WHERE d.model = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clause := " WHERE "
		if where != "" {
			clause = " AND "
		}
		where += clause + "d.status = $" + strconv.Itoa(len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += where + " ORDER BY d.created_at DESC LIMIT $" + strconv.Itoa(len(args))
	return query, args
}

// ListRecentDialogs returns the newest dialogs joined with their owners,
// optionally filtered by exact model and/or status.
func (s *Store) ListRecentDialogs(ctx context.Context, filter DialogFilter) ([]DialogWithUser, error) {
	query, args := recentDialogsQuery(filter)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent dialogs: %w", err)
	}
	defer rows.Close()

	dialogs := make([]DialogWithUser, 0)
	for rows.Next() {
		var d DialogWithUser
		err := rows.Scan(
			&d.ID, &d.UserID, &d.TelegramID, &d.Username, &d.Tokens, &d.Model, &d.Status,
			&d.UserMessage, &d.AssistantMessage, &d.InteractionType, &d.CreatedAt, &d.UpdatedAt,
			&d.UserName, &d.UserPremium,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dialog: %w", err)
		}
		dialogs = append(dialogs, d)
	}
	return dialogs, rows.Err()
}

// ListDialogsByUserID returns a user's dialogs in ascending chronological order.
func (s *Store) ListDialogsByUserID(ctx context.Context, userID int64) ([]Dialog, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, user_id, telegram_id, username, tokens, model, status,
       user_message, assistant_message, interaction_type, created_at, updated_at
FROM dialogs WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list dialogs by user: %w", err)
	}
	defer rows.Close()

	dialogs := make([]Dialog, 0)
	for rows.Next() {
		var d Dialog
		err := rows.Scan(
			&d.ID, &d.UserID, &d.TelegramID, &d.Username, &d.Tokens, &d.Model, &d.Status,
			&d.UserMessage, &d.AssistantMessage, &d.InteractionType, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dialog: %w", err)
		}
		dialogs = append(dialogs, d)
	}
	return dialogs, rows.Err()
}

// ModelCounts returns per-model dialog counts across all time.
func (s *Store) ModelCounts(ctx context.Context) ([]ModelCount, error) {
	rows, err := s.db.Query(ctx, `SELECT model, COUNT(*) FROM dialogs GROUP BY model ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("model counts: %w", err)
	}
	defer rows.Close()

	counts := make([]ModelCount, 0)
	for rows.Next() {
		var mc ModelCount
		if err := rows.Scan(&mc.Model, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan model count: %w", err)
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}
