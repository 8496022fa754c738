// Package analytics aggregates the dashboard payload: user counts, daily
// token series, the recent-dialog feed, the user list and the model-usage
// distribution.
package analytics

import (
	"context"
	"math"
	"time"

	"github.com/botboard/backend/internal/store"
	"github.com/botboard/backend/internal/timeutil"
)

// Dialog status literal the dashboard counts as in-flight.
const StatusActive = "Активный"

const recentDialogLimit = 100

// Params narrows the dashboard aggregation.
type Params struct {
	Days   int
	Model  string
	Status string
}

type Summary struct {
	TotalUsers    int64 `json:"totalUsers"`
	PremiumUsers  int64 `json:"premiumUsers"`
	ActiveDialogs int64 `json:"activeDialogs"`
	TotalTokens   int64 `json:"totalTokens"`
}

// TokenStatPoint is one day of the trailing token series. Date carries the
// short "02.01" label the chart renders directly.
type TokenStatPoint struct {
	Date        string `json:"date"`
	TotalTokens int64  `json:"total_tokens"`
	ActiveUsers int64  `json:"active_users"`
}

// DialogEntry is one row of the recent-dialog feed. Date replaces the stored
// instant with its fixed-offset display rendering.
type DialogEntry struct {
	ID               int64   `json:"id"`
	User             string  `json:"user"`
	Username         string  `json:"username"`
	TelegramID       int64   `json:"telegram_id"`
	Date             string  `json:"date"`
	Tokens           int64   `json:"tokens"`
	Model            string  `json:"model"`
	Status           string  `json:"status"`
	Premium          bool    `json:"premium"`
	UserMessage      *string `json:"user_message"`
	AssistantMessage *string `json:"assistant_message"`
	InteractionType  string  `json:"interaction_type"`
}

type UserEntry struct {
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

// ModelShare is one slice of the model-usage distribution; Value is the
// percentage share rounded to the nearest integer.
type ModelShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Count int64  `json:"count"`
}

// Dashboard is the full analytics payload.
type Dashboard struct {
	Summary           Summary          `json:"summary"`
	TokenStats        []TokenStatPoint `json:"tokenStats"`
	Dialogs           []DialogEntry    `json:"dialogs"`
	Users             []UserEntry      `json:"users"`
	ModelDistribution []ModelShare     `json:"modelDistribution"`
}

// Service aggregates dashboard analytics.
type Service struct {
	store       *store.Store
	loc         *time.Location
	defaultDays int
}

func NewService(st *store.Store, loc *time.Location, defaultDays int) *Service {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &Service{store: st, loc: timeutil.EnsureLocation(loc), defaultDays: defaultDays}
}

// Dashboard runs the aggregation queries and shapes the response.
func (s *Service) Dashboard(ctx context.Context, params Params) (*Dashboard, error) {
	days := params.Days
	if days <= 0 {
		days = s.defaultDays
	}

	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	premiumUsers, err := s.store.CountPremiumUsers(ctx)
	if err != nil {
		return nil, err
	}
	activeDialogs, err := s.store.CountDialogsByStatus(ctx, StatusActive)
	if err != nil {
		return nil, err
	}
	totalTokens, err := s.store.SumUserTokens(ctx)
	if err != nil {
		return nil, err
	}

	since := timeutil.WindowStart(timeutil.Today(), days)
	stats, err := s.store.ListTokenStatsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	dialogs, err := s.store.ListRecentDialogs(ctx, store.DialogFilter{
		Model:  params.Model,
		Status: params.Status,
		Limit:  recentDialogLimit,
	})
	if err != nil {
		return nil, err
	}

	users, err := s.store.ListUsersByTokens(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.ModelCounts(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Summary: Summary{
			TotalUsers:    totalUsers,
			PremiumUsers:  premiumUsers,
			ActiveDialogs: activeDialogs,
			TotalTokens:   totalTokens,
		},
		TokenStats:        buildTokenSeries(stats),
		Dialogs:           make([]DialogEntry, 0, len(dialogs)),
		Users:             make([]UserEntry, 0, len(users)),
		ModelDistribution: buildModelDistribution(counts),
	}
	for _, d := range dialogs {
		dashboard.Dialogs = append(dashboard.Dialogs, s.dialogEntry(d))
	}
	for _, u := range users {
		dashboard.Users = append(dashboard.Users, s.userEntry(u))
	}
	return dashboard, nil
}

func buildTokenSeries(stats []store.TokenStat) []TokenStatPoint {
	points := make([]TokenStatPoint, 0, len(stats))
	for _, st := range stats {
		points = append(points, TokenStatPoint{
			Date:        timeutil.DayMonthLabel(st.Date),
			TotalTokens: st.TotalTokens,
			ActiveUsers: st.ActiveUsers,
		})
	}
	return points
}

// buildModelDistribution converts raw per-model counts into percentage
// shares. With no dialogs at all every share is zero.
func buildModelDistribution(counts []store.ModelCount) []ModelShare {
	var total int64
	for _, mc := range counts {
		total += mc.Count
	}

	shares := make([]ModelShare, 0, len(counts))
	for _, mc := range counts {
		value := 0
		if total > 0 {
			value = int(math.Round(float64(mc.Count) / float64(total) * 100))
		}
		shares = append(shares, ModelShare{Name: mc.Model, Value: value, Count: mc.Count})
	}
	return shares
}

func (s *Service) dialogEntry(d store.DialogWithUser) DialogEntry {
	return DialogEntry{
		ID:               d.ID,
		User:             d.UserName,
		Username:         d.Username,
		TelegramID:       d.TelegramID,
		Date:             timeutil.FormatDateTime(d.CreatedAt, s.loc),
		Tokens:           d.Tokens,
		Model:            d.Model,
		Status:           d.Status,
		Premium:          d.UserPremium,
		UserMessage:      d.UserMessage,
		AssistantMessage: d.AssistantMessage,
		InteractionType:  d.InteractionType,
	}
}

func (s *Service) userEntry(u store.User) UserEntry {
	return UserEntry{
		ID:           u.ID,
		TelegramID:   u.TelegramID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		TotalTokens:  u.TotalTokens,
		DialogsCount: u.DialogsCount,
		Premium:      u.Premium,
		LastActive:   timeutil.FormatDate(u.LastActive, s.loc),
	}
}
