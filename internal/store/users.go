package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

// UpsertInteractionParams records one bot interaction against a user row.
type UpsertInteractionParams struct {
	TelegramID int64
	Name       string
	Username   string
	Email      *string
	Premium    bool
	Tokens     int64
	Now        time.Time
}

const upsertUserInteractionSQL = `
INSERT INTO users (telegram_id, name, username, email, premium, total_tokens, dialogs_count, last_active)
VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
ON CONFLICT (telegram_id) DO UPDATE SET
    total_tokens  = users.total_tokens + EXCLUDED.total_tokens,
    dialogs_count = users.dialogs_count + 1,
    last_active   = EXCLUDED.last_active,
    premium       = EXCLUDED.premium,
    username      = EXCLUDED.username
RETURNING id`

// UpsertUserInteraction creates the user on first contact and otherwise
// increments the token/dialog counters atomically. Name and email are set on
// insert only, matching the bot's original update behavior.
func (s *Store) UpsertUserInteraction(ctx context.Context, params UpsertInteractionParams) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, upsertUserInteractionSQL,
		params.TelegramID,
		params.Name,
		params.Username,
		params.Email,
		params.Premium,
		params.Tokens,
		params.Now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert user interaction: %w", err)
	}
	return id, nil
}

const userColumns = `id, telegram_id, name, username, email, premium, total_tokens, dialogs_count, last_active`

// GetUserByTelegramID returns ErrNotFound when no such user exists.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return scanUser(row)
}

// GetUserByID returns ErrNotFound when no such user exists.
func (s *Store) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// ListUsersByTokens returns all users ordered by descending token total.
func (s *Store) ListUsersByTokens(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY total_tokens DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *Store) CountPremiumUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE premium = true`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count premium users: %w", err)
	}
	return count, nil
}

// SumUserTokens totals the per-user cumulative counters.
func (s *Store) SumUserTokens(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_tokens), 0) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum user tokens: %w", err)
	}
	return total, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Premium,
		&user.TotalTokens,
		&user.DialogsCount,
		&user.LastActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
