package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/botboard/backend/internal/store"
)

func TestBuildModelDistribution(t *testing.T) {
	counts := []store.ModelCount{
		{Model: "GPT-4", Count: 62},
		{Model: "GPT-3.5", Count: 30},
		{Model: "Claude", Count: 8},
	}

	shares := buildModelDistribution(counts)
	require.Len(t, shares, 3)
	require.Equal(t, ModelShare{Name: "GPT-4", Value: 62, Count: 62}, shares[0])
	require.Equal(t, ModelShare{Name: "GPT-3.5", Value: 30, Count: 30}, shares[1])
	require.Equal(t, ModelShare{Name: "Claude", Value: 8, Count: 8}, shares[2])

	sum := 0
	for _, share := range shares {
		sum += share.Value
	}
	require.InDelta(t, 100, sum, 1, "percentages should sum to 100 within rounding")
}

func TestBuildModelDistributionRounds(t *testing.T) {
	counts := []store.ModelCount{
		{Model: "GPT-4", Count: 1},
		{Model: "GPT-3.5", Count: 2},
	}

	shares := buildModelDistribution(counts)
	require.Equal(t, 33, shares[0].Value)
	require.Equal(t, 67, shares[1].Value)
}

func TestBuildModelDistributionEmpty(t *testing.T) {
	require.Empty(t, buildModelDistribution(nil))

	// Zero-count rows must never divide by zero.
	shares := buildModelDistribution([]store.ModelCount{{Model: "GPT-4", Count: 0}})
	require.Equal(t, 0, shares[0].Value)
}

func TestBuildTokenSeriesLabels(t *testing.T) {
	stats := []store.TokenStat{
		{Date: time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC), TotalTokens: 120, ActiveUsers: 3},
		{Date: time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), TotalTokens: 80, ActiveUsers: 2},
	}

	points := buildTokenSeries(stats)
	require.Len(t, points, 2)
	require.Equal(t, TokenStatPoint{Date: "04.07", TotalTokens: 120, ActiveUsers: 3}, points[0])
	require.Equal(t, TokenStatPoint{Date: "05.07", TotalTokens: 80, ActiveUsers: 2}, points[1])
}

func TestDialogEntryConvertsCreatedAt(t *testing.T) {
	svc := NewService(nil, time.FixedZone("UTC+3", 3*3600), 7)

	entry := svc.dialogEntry(store.DialogWithUser{
		Dialog: store.Dialog{
			ID:         5,
			TelegramID: 42,
			Tokens:     10,
			Model:      "GPT-4",
			Status:     "Завершён",
			CreatedAt:  time.Date(2025, time.March, 5, 21, 30, 0, 0, time.UTC),
		},
		UserName:    "Ann",
		UserPremium: true,
	})

	require.Equal(t, "06.03.2025 00:30", entry.Date)
	require.Equal(t, "Ann", entry.User)
	require.True(t, entry.Premium)
}

func TestUserEntryConvertsLastActive(t *testing.T) {
	svc := NewService(nil, time.FixedZone("UTC+3", 3*3600), 7)

	entry := svc.userEntry(store.User{
		ID:          1,
		TelegramID:  42,
		Name:        "Ann",
		TotalTokens: 15,
		LastActive:  time.Date(2025, time.December, 31, 22, 0, 0, 0, time.UTC),
	})

	require.Equal(t, "01.01.2026", entry.LastActive)
}

func TestNewServiceDefaultDays(t *testing.T) {
	svc := NewService(nil, nil, 0)
	require.Equal(t, 7, svc.defaultDays)
}
