// Package ingest records one chat interaction: user counters, dialog row,
// daily token aggregate, event log, message rows and a cost row, all inside
// a single transaction.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/botboard/backend/internal/store"
	"github.com/botboard/backend/internal/timeutil"
)

// Dialog status literal the bot stamps on every completed interaction.
const StatusCompleted = "Завершён"

const eventTypeMessageReceived = "message_received"

// Defaults applied when the bot omits optional fields.
const (
	defaultName            = "Пользователь"
	defaultModel           = "GPT-3.5"
	defaultInteractionType = "chat"
)

var ErrTelegramIDRequired = errors.New("telegram_id is required")

// Request is the interaction payload posted by the bot.
type Request struct {
	TelegramID       int64   `json:"telegram_id" validate:"required"`
	Name             string  `json:"name"`
	Username         string  `json:"username"`
	Tokens           int64   `json:"tokens" validate:"gte=0"`
	Model            string  `json:"model"`
	Premium          bool    `json:"premium"`
	Email            *string `json:"email"`
	UserMessage      *string `json:"user_message"`
	AssistantMessage *string `json:"assistant_message"`
	InteractionType  string  `json:"interaction_type"`
}

// Result reports the created rows.
type Result struct {
	DialogID int64 `json:"dialog_id"`
	UserID   int64 `json:"user_id"`
}

// Service runs the ingestion transaction.
type Service struct {
	pool       *pgxpool.Pool
	store      *store.Store
	validate   *validator.Validate
	pricePer1K decimal.Decimal
}

func NewService(pool *pgxpool.Pool, st *store.Store, usdPer1KTokens float64) *Service {
	return &Service{
		pool:       pool,
		store:      st,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		pricePer1K: decimal.NewFromFloat(usdPer1KTokens),
	}
}

// Record persists one interaction. The request id, when present, is carried
// into the event log for correlation.
func (s *Service) Record(ctx context.Context, req Request, requestID *uuid.UUID) (Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTelegramIDRequired, err)
	}
	applyDefaults(&req)

	start := time.Now()
	now := start.UTC()

	result, err := s.recordTx(ctx, req, requestID, now, start)
	if err != nil {
		s.logFailure(ctx, req, requestID, start, err)
		return Result{}, err
	}
	return result, nil
}

func (s *Service) recordTx(ctx context.Context, req Request, requestID *uuid.UUID, now, start time.Time) (Result, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Result{}, fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback(ctx)

	st := s.store.WithTx(tx)

	userID, err := st.UpsertUserInteraction(ctx, store.UpsertInteractionParams{
		TelegramID: req.TelegramID,
		Name:       req.Name,
		Username:   req.Username,
		Email:      req.Email,
		Premium:    req.Premium,
		Tokens:     req.Tokens,
		Now:        now,
	})
	if err != nil {
		return Result{}, err
	}

	dialogID, err := st.InsertDialog(ctx, store.InsertDialogParams{
		UserID:           userID,
		TelegramID:       req.TelegramID,
		Username:         req.Username,
		Tokens:           req.Tokens,
		Model:            req.Model,
		Status:           StatusCompleted,
		UserMessage:      req.UserMessage,
		AssistantMessage: req.AssistantMessage,
		InteractionType:  req.InteractionType,
		Now:              now,
	})
	if err != nil {
		return Result{}, err
	}

	today := timeutil.TruncateToDay(now, time.UTC)
	activeUsers, err := st.CountDistinctActiveUsers(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return Result{}, err
	}
	if err := st.UpsertTokenStat(ctx, today, req.Tokens, activeUsers); err != nil {
		return Result{}, err
	}

	elapsed := int32(time.Since(start).Milliseconds())
	payload, err := json.Marshal(interactionEvent{
		UserMessage:      truncate(req.UserMessage, eventMessageLimit),
		AssistantMessage: truncate(req.AssistantMessage, eventMessageLimit),
		Tokens:           req.Tokens,
		Model:            req.Model,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal event payload: %w", err)
	}
	if err := st.InsertEventLog(ctx, store.InsertEventLogParams{
		UserID:         &userID,
		EventType:      eventTypeMessageReceived,
		EventData:      payload,
		ResponseTimeMS: &elapsed,
		Success:        true,
		RequestID:      requestID,
	}); err != nil {
		return Result{}, err
	}

	if req.UserMessage != nil {
		if err := st.InsertMessage(ctx, req.TelegramID, *req.UserMessage, "user", now); err != nil {
			return Result{}, err
		}
	}
	if req.AssistantMessage != nil {
		if err := st.InsertMessage(ctx, req.TelegramID, *req.AssistantMessage, "bot", now); err != nil {
			return Result{}, err
		}
	}

	if req.Tokens > 0 {
		if err := st.InsertCost(ctx, req.TelegramID, req.Tokens, s.derivedCost(req.Tokens), today); err != nil {
			return Result{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit ingest tx: %w", err)
	}
	return Result{DialogID: dialogID, UserID: userID}, nil
}

// logFailure records a failed ingestion outside the rolled-back transaction.
func (s *Service) logFailure(ctx context.Context, req Request, requestID *uuid.UUID, start time.Time, cause error) {
	elapsed := int32(time.Since(start).Milliseconds())
	msg := cause.Error()
	payload, _ := json.Marshal(interactionEvent{
		Tokens: req.Tokens,
		Model:  req.Model,
	})
	err := s.store.InsertEventLog(ctx, store.InsertEventLogParams{
		EventType:      eventTypeMessageReceived,
		EventData:      payload,
		ResponseTimeMS: &elapsed,
		Success:        false,
		ErrorMessage:   &msg,
		RequestID:      requestID,
	})
	if err != nil {
		slog.Error("record ingest failure event", "error", err, "cause", cause)
	}
}

// derivedCost prices a token count at the configured USD rate per 1K tokens.
func (s *Service) derivedCost(tokens int64) decimal.Decimal {
	return s.pricePer1K.Mul(decimal.NewFromInt(tokens)).Div(decimal.NewFromInt(1000))
}

const eventMessageLimit = 100

type interactionEvent struct {
	UserMessage      *string `json:"user_message"`
	AssistantMessage *string `json:"assistant_message"`
	Tokens           int64   `json:"tokens"`
	Model            string  `json:"model"`
}

func applyDefaults(req *Request) {
	if req.Name == "" {
		req.Name = defaultName
	}
	if req.Model == "" {
		req.Model = defaultModel
	}
	if req.InteractionType == "" {
		req.InteractionType = defaultInteractionType
	}
}

// truncate keeps the first limit runes of an optional string.
func truncate(s *string, limit int) *string {
	if s == nil {
		return nil
	}
	runes := []rune(*s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	return &cut
}
