package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertEventLogParams is one audit-trail entry for a handler invocation.
type InsertEventLogParams struct {
	UserID         *int64
	EventType      string
	EventData      []byte
	ResponseTimeMS *int32
	Success        bool
	ErrorMessage   *string
	RequestID      *uuid.UUID
}

const insertEventLogSQL = `
INSERT INTO event_logs (user_id, event_type, event_data, response_time_ms, success, error_message, request_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (s *Store) InsertEventLog(ctx context.Context, params InsertEventLogParams) error {
	data := params.EventData
	if len(data) == 0 {
		data = []byte("{}")
	}
	_, err := s.db.Exec(ctx, insertEventLogSQL,
		params.UserID,
		params.EventType,
		data,
		params.ResponseTimeMS,
		params.Success,
		params.ErrorMessage,
		params.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}

func (s *Store) CountEventLogs(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count event logs: %w", err)
	}
	return count, nil
}
