// Package reports serves the small single-figure dashboard widgets: today's
// token spend and today's response quality.
package reports

import (
	"context"
	"math"
	"time"

	"github.com/botboard/backend/internal/store"
	"github.com/botboard/backend/internal/timeutil"
)

// Service answers the costs and quality widgets.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CostReport is today's token usage priced in USD.
type CostReport struct {
	Date        string  `json:"date"`
	TotalTokens int64   `json:"total_tokens"`
	CostUSD     float64 `json:"cost_usd"`
}

// CostsToday sums today's cost rows; zeroes when none exist.
func (s *Service) CostsToday(ctx context.Context) (CostReport, error) {
	today := timeutil.Today()
	totals, err := s.store.SumCostsForDate(ctx, today)
	if err != nil {
		return CostReport{}, err
	}
	return CostReport{
		Date:        today.Format(time.DateOnly),
		TotalTokens: totals.Tokens,
		CostUSD:     totals.USD.Round(4).InexactFloat64(),
	}, nil
}

// QualityReport is the share of today's bot replies longer than 50 characters.
type QualityReport struct {
	Quality float64 `json:"quality"`
	Date    string  `json:"date"`
}

// QualityToday computes the quality percentage, rounded to two decimals.
func (s *Service) QualityToday(ctx context.Context) (QualityReport, error) {
	today := timeutil.Today()
	pct, err := s.store.BotQualityPercent(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return QualityReport{}, err
	}
	return QualityReport{
		Quality: math.Round(pct*100) / 100,
		Date:    today.Format(time.DateOnly),
	}, nil
}
