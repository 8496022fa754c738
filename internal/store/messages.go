package store

import (
	"context"
	"fmt"
	"time"
)

// InsertMessage appends one conversation message keyed by telegram id.
func (s *Store) InsertMessage(ctx context.Context, telegramID int64, text, sender string, ts time.Time) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO messages (user_id, message, sender, timestamp) VALUES ($1, $2, $3, $4)`,
		telegramID, text, sender, ts,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessagesByTelegramID returns a user's messages, newest first.
func (s *Store) ListMessagesByTelegramID(ctx context.Context, telegramID int64) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, user_id, message, sender, timestamp, quality_score
FROM messages WHERE user_id = $1 ORDER BY timestamp DESC`, telegramID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message, &m.Sender, &m.Timestamp, &m.QualityScore); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// BotQualityPercent returns the share of bot messages in [dayStart, dayEnd)
// longer than 50 characters, as a percentage. Zero when no bot messages exist.
func (s *Store) BotQualityPercent(ctx context.Context, dayStart, dayEnd time.Time) (float64, error) {
	var pct float64
	err := s.db.QueryRow(ctx, `
SELECT COALESCE(COUNT(*) FILTER (WHERE LENGTH(message) > 50) * 100.0 / NULLIF(COUNT(*), 0), 0)
FROM messages
WHERE timestamp >= $1 AND timestamp < $2 AND sender = 'bot'`, dayStart, dayEnd).Scan(&pct)
	if err != nil {
		return 0, fmt.Errorf("bot quality percent: %w", err)
	}
	return pct, nil
}

func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
