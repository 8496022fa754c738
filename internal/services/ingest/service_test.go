package ingest

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRequestValidationRequiresTelegramID(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	require.Error(t, v.Struct(Request{Tokens: 10}))
	require.NoError(t, v.Struct(Request{TelegramID: 42}))
	require.Error(t, v.Struct(Request{TelegramID: 42, Tokens: -1}))
}

func TestApplyDefaults(t *testing.T) {
	req := Request{TelegramID: 42}
	applyDefaults(&req)

	require.Equal(t, "Пользователь", req.Name)
	require.Equal(t, "GPT-3.5", req.Model)
	require.Equal(t, "chat", req.InteractionType)

	req = Request{TelegramID: 42, Name: "Ann", Model: "GPT-4", InteractionType: "voice"}
	applyDefaults(&req)
	require.Equal(t, "Ann", req.Name)
	require.Equal(t, "GPT-4", req.Model)
	require.Equal(t, "voice", req.InteractionType)
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("я", 150)
	got := truncate(&long, eventMessageLimit)
	require.NotNil(t, got)
	require.Equal(t, 100, len([]rune(*got)))

	short := "hi"
	require.Equal(t, &short, truncate(&short, eventMessageLimit))
	require.Nil(t, truncate(nil, eventMessageLimit))
}

func TestDerivedCost(t *testing.T) {
	svc := &Service{pricePer1K: decimal.NewFromFloat(0.002)}

	require.True(t, svc.derivedCost(1000).Equal(decimal.NewFromFloat(0.002)),
		"1000 tokens at 0.002/1K should cost 0.002, got %s", svc.derivedCost(1000))
	require.True(t, svc.derivedCost(500).Equal(decimal.NewFromFloat(0.001)))
	require.True(t, svc.derivedCost(0).IsZero())
}
