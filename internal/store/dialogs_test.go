package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecentDialogsQuery(t *testing.T) {
	tests := []struct {
		name       string
		filter     DialogFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "no filters",
			filter:     DialogFilter{},
			wantClause: "ORDER BY d.created_at DESC LIMIT $1",
			wantArgs:   []any{100},
		},
		{
			name:       "model only",
			filter:     DialogFilter{Model: "GPT-4"},
			wantClause: "WHERE d.model = $1 ORDER BY d.created_at DESC LIMIT $2",
			wantArgs:   []any{"GPT-4", 100},
		},
		{
			name:       "status only",
			filter:     DialogFilter{Status: "Активный"},
			wantClause: "WHERE d.status = $1 ORDER BY d.created_at DESC LIMIT $2",
			wantArgs:   []any{"Активный", 100},
		},
		{
			name:       "model and status",
			filter:     DialogFilter{Model: "GPT-4", Status: "Завершён"},
			wantClause: "WHERE d.model = $1 AND d.status = $2 ORDER BY d.created_at DESC LIMIT $3",
			wantArgs:   []any{"GPT-4", "Завершён", 100},
		},
		{
			name:       "custom limit",
			filter:     DialogFilter{Limit: 25},
			wantClause: "LIMIT $1",
			wantArgs:   []any{25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := recentDialogsQuery(tt.filter)
			require.Contains(t, query, tt.wantClause)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRecentDialogsQueryNeverInlinesFilterValues(t *testing.T) {
	query, _ := recentDialogsQuery(DialogFilter{Model: "'; DROP TABLE dialogs; --", Status: "x"})
	require.False(t, strings.Contains(query, "DROP TABLE"))
}
