package store

import (
	"context"
	"fmt"
	"time"
)

const upsertTokenStatSQL = `
INSERT INTO token_stats (date, total_tokens, active_users)
VALUES ($1, $2, $3)
ON CONFLICT (date) DO UPDATE SET
    total_tokens = token_stats.total_tokens + EXCLUDED.total_tokens`

// UpsertTokenStat adds tokens to the day's aggregate, creating the row with
// the provided active-user count when the date is first seen. The active-user
// figure is only stamped at creation; later ingestions leave it untouched.
func (s *Store) UpsertTokenStat(ctx context.Context, date time.Time, tokens, activeUsers int64) error {
	if _, err := s.db.Exec(ctx, upsertTokenStatSQL, date, tokens, activeUsers); err != nil {
		return fmt.Errorf("upsert token stat: %w", err)
	}
	return nil
}

// ListTokenStatsSince returns daily aggregates from the given date onward,
// oldest first.
func (s *Store) ListTokenStatsSince(ctx context.Context, since time.Time) ([]TokenStat, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, date, total_tokens, active_users
FROM token_stats WHERE date >= $1 ORDER BY date`, since)
	if err != nil {
		return nil, fmt.Errorf("list token stats: %w", err)
	}
	defer rows.Close()

	stats := make([]TokenStat, 0)
	for rows.Next() {
		var st TokenStat
		if err := rows.Scan(&st.ID, &st.Date, &st.TotalTokens, &st.ActiveUsers); err != nil {
			return nil, fmt.Errorf("scan token stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
