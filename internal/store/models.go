package store

import "time"

// User is a row in the users table. TelegramID is the external key shared
// with messages and costs; ID is the internal key referenced by dialogs.
type User struct {
	ID           int64
	TelegramID   int64
	Name         string
	Username     string
	Email        *string
	Premium      bool
	TotalTokens  int64
	DialogsCount int64
	LastActive   time.Time
}

// Dialog is one logged bot interaction.
type Dialog struct {
	ID               int64
	UserID           int64
	TelegramID       int64
	Username         string
	Tokens           int64
	Model            string
	Status           string
	UserMessage      *string
	AssistantMessage *string
	InteractionType  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DialogWithUser joins a dialog with its owner for the dashboard feed.
type DialogWithUser struct {
	Dialog
	UserName    string
	UserPremium bool
}

// Message is one side of a conversation, referenced by telegram id.
type Message struct {
	ID           int64
	UserID       int64
	Message      string
	Sender       string
	Timestamp    time.Time
	QualityScore *float64
}

// TokenStat is the daily token/active-user aggregate.
type TokenStat struct {
	ID          int64
	Date        time.Time
	TotalTokens int64
	ActiveUsers int64
}

// ModelCount is one row of the model-usage breakdown.
type ModelCount struct {
	Model string
	Count int64
}
