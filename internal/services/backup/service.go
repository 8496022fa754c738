// Package backup snapshots top-line table counts into the event log.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/botboard/backend/internal/store"
	"github.com/botboard/backend/internal/timeutil"
)

const eventTypeBackupCreated = "backup_created"

// Snapshot is the recorded state of the dataset at backup time.
type Snapshot struct {
	BackupDate    string  `json:"backup_date"`
	UsersCount    int64   `json:"users_count"`
	MessagesCount int64   `json:"messages_count"`
	TotalTokens   int64   `json:"total_tokens"`
	TotalCostUSD  float64 `json:"total_cost_usd"`
	LogsCount     int64   `json:"logs_count"`
}

// Service computes and records snapshots.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Run gathers the snapshot counts and appends a backup_created event.
func (s *Service) Run(ctx context.Context, requestID *uuid.UUID) (Snapshot, error) {
	usersCount, err := s.store.CountUsers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	messagesCount, err := s.store.CountMessages(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	costs, err := s.store.SumCostsAllTime(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	logsCount, err := s.store.CountEventLogs(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		BackupDate:    timeutil.Today().Format(time.DateOnly),
		UsersCount:    usersCount,
		MessagesCount: messagesCount,
		TotalTokens:   costs.Tokens,
		TotalCostUSD:  costs.USD.InexactFloat64(),
		LogsCount:     logsCount,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.store.InsertEventLog(ctx, store.InsertEventLogParams{
		EventType: eventTypeBackupCreated,
		EventData: payload,
		Success:   true,
		RequestID: requestID,
	}); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}
