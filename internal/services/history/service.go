// Package history serves per-user drill-downs: the raw message log and the
// full dialog history with profile details.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/botboard/backend/internal/store"
	"github.com/botboard/backend/internal/timeutil"
)

var ErrUserNotFound = errors.New("user not found")

// Service answers per-user lookups.
type Service struct {
	store *store.Store
	loc   *time.Location
}

func NewService(st *store.Store, loc *time.Location) *Service {
	return &Service{store: st, loc: timeutil.EnsureLocation(loc)}
}

// MessageEntry is one stored message with its optional quality score.
type MessageEntry struct {
	ID           int64    `json:"id"`
	Message      string   `json:"message"`
	Sender       string   `json:"sender"`
	QualityScore *float64 `json:"quality_score"`
	Timestamp    string   `json:"timestamp"`
}

// MessagesResponse lists a user's messages, newest first.
type MessagesResponse struct {
	TelegramID int64          `json:"telegram_id"`
	Messages   []MessageEntry `json:"messages"`
	Count      int            `json:"count"`
}

// Messages returns all messages recorded for the telegram id.
func (s *Service) Messages(ctx context.Context, telegramID int64) (MessagesResponse, error) {
	rows, err := s.store.ListMessagesByTelegramID(ctx, telegramID)
	if err != nil {
		return MessagesResponse{}, err
	}

	messages := make([]MessageEntry, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, MessageEntry{
			ID:           m.ID,
			Message:      m.Message,
			Sender:       m.Sender,
			QualityScore: m.QualityScore,
			Timestamp:    m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return MessagesResponse{TelegramID: telegramID, Messages: messages, Count: len(messages)}, nil
}

// UserDetail is the profile block of the history view. LastActive carries the
// fixed-offset display rendering instead of the stored instant.
type UserDetail struct {
	ID           int64   `json:"id"`
	TelegramID   int64   `json:"telegram_id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Email        *string `json:"email"`
	TotalTokens  int64   `json:"total_tokens"`
	DialogsCount int64   `json:"dialogs_count"`
	Premium      bool    `json:"premium"`
	LastActive   string  `json:"lastActive"`
}

// DialogEntry is one past interaction in chronological order.
type DialogEntry struct {
	ID               int64   `json:"id"`
	Tokens           int64   `json:"tokens"`
	Model            string  `json:"model"`
	Status           string  `json:"status"`
	UserMessage      *string `json:"user_message"`
	AssistantMessage *string `json:"assistant_message"`
	InteractionType  string  `json:"interaction_type"`
	Date             string  `json:"date"`
}

// UserHistoryResponse is the profile plus full dialog history.
type UserHistoryResponse struct {
	User          UserDetail    `json:"user"`
	Dialogs       []DialogEntry `json:"dialogs"`
	TotalMessages int           `json:"total_messages"`
}

// UserHistory resolves the user by telegram id when given, internal id
// otherwise, and returns their dialog history oldest first.
func (s *Service) UserHistory(ctx context.Context, telegramID, userID *int64) (UserHistoryResponse, error) {
	var (
		user store.User
		err  error
	)
	switch {
	case telegramID != nil:
		user, err = s.store.GetUserByTelegramID(ctx, *telegramID)
	case userID != nil:
		user, err = s.store.GetUserByID(ctx, *userID)
	default:
		return UserHistoryResponse{}, ErrUserNotFound
	}
	if errors.Is(err, store.ErrNotFound) {
		return UserHistoryResponse{}, ErrUserNotFound
	}
	if err != nil {
		return UserHistoryResponse{}, err
	}

	rows, err := s.store.ListDialogsByUserID(ctx, user.ID)
	if err != nil {
		return UserHistoryResponse{}, err
	}

	dialogs := make([]DialogEntry, 0, len(rows))
	for _, d := range rows {
		dialogs = append(dialogs, DialogEntry{
			ID:               d.ID,
			Tokens:           d.Tokens,
			Model:            d.Model,
			Status:           d.Status,
			UserMessage:      d.UserMessage,
			AssistantMessage: d.AssistantMessage,
			InteractionType:  d.InteractionType,
			Date:             timeutil.FormatDateTime(d.CreatedAt, s.loc),
		})
	}

	return UserHistoryResponse{
		User: UserDetail{
			ID:           user.ID,
			TelegramID:   user.TelegramID,
			Name:         user.Name,
			Username:     user.Username,
			Email:        user.Email,
			TotalTokens:  user.TotalTokens,
			DialogsCount: user.DialogsCount,
			Premium:      user.Premium,
			LastActive:   timeutil.FormatDateTime(user.LastActive, s.loc),
		},
		Dialogs:       dialogs,
		TotalMessages: len(dialogs),
	}, nil
}
