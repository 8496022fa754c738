package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InsertCost appends one dated cost row keyed by telegram id.
func (s *Store) InsertCost(ctx context.Context, telegramID int64, tokens int64, cost decimal.Decimal, date time.Time) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO costs (user_id, tokens_used, cost_dollars, date) VALUES ($1, $2, $3, $4)`,
		telegramID, tokens, cost.String(), date,
	)
	if err != nil {
		return fmt.Errorf("insert cost: %w", err)
	}
	return nil
}

// CostTotals is a token/dollar sum over cost rows.
type CostTotals struct {
	Tokens int64
	USD    decimal.Decimal
}

// SumCostsForDate totals cost rows for a single calendar date.
func (s *Store) SumCostsForDate(ctx context.Context, date time.Time) (CostTotals, error) {
	return s.sumCosts(ctx, `
SELECT COALESCE(SUM(tokens_used), 0), COALESCE(SUM(cost_dollars), 0)::text
FROM costs WHERE date = $1`, date)
}

// SumCostsAllTime totals every cost row.
func (s *Store) SumCostsAllTime(ctx context.Context) (CostTotals, error) {
	return s.sumCosts(ctx, `
SELECT COALESCE(SUM(tokens_used), 0), COALESCE(SUM(cost_dollars), 0)::text
FROM costs`)
}

func (s *Store) sumCosts(ctx context.Context, query string, args ...any) (CostTotals, error) {
	var (
		totals  CostTotals
		usdText string
	)
	if err := s.db.QueryRow(ctx, query, args...).Scan(&totals.Tokens, &usdText); err != nil {
		return CostTotals{}, fmt.Errorf("sum costs: %w", err)
	}
	usd, err := decimal.NewFromString(usdText)
	if err != nil {
		return CostTotals{}, fmt.Errorf("parse cost sum %q: %w", usdText, err)
	}
	totals.USD = usd
	return totals, nil
}
