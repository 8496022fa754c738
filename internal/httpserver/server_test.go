package httpserver

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/botboard/backend/internal/app"
	"github.com/botboard/backend/internal/config"
	ingestsvc "github.com/botboard/backend/internal/services/ingest"
)

// newTestServer builds a server whose 4xx paths never reach the database.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			ListenAddr:  ":0",
			BodyLimitMB: 1,
			ReadTimeout: 5 * time.Second,
			IdleTimeout: 5 * time.Second,
		},
		Reporting: config.ReportingConfig{UTCOffsetHours: 3, DefaultDays: 7},
	}

	container := &app.Container{
		Config: cfg,
		Ingest: ingestsvc.NewService(nil, nil, 0.002),
	}

	server, err := New(container)
	require.NoError(t, err)
	return server
}

func TestPreflightRespondsWithCORSHeaders(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/analytics", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	require.Equal(t, "86400", resp.Header.Get("Access-Control-Max-Age"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, body)
}

func TestUnsupportedMethodReturns405(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("DELETE", "/api/analytics", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 405, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Method not allowed", body["error"])
}

func TestIngestStatusProbe(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/ingest", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Bot webhook API is running", body["status"])
}

func TestIngestRejectsMissingTelegramID(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/ingest", strings.NewReader(`{"tokens": 10}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "telegram_id is required", body["error"])
}

func TestIngestRejectsMalformedJSON(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/ingest", strings.NewReader(`{"tokens":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)
}

func TestMessagesRequiresTelegramID(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/messages", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "telegram_id required", body["error"])
}

func TestUserHistoryRequiresAnID(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/users/history", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "telegram_id or user_id is required", body["error"])
}

func TestUserHistoryRejectsNonNumericID(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/users/history?telegram_id=abc", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)
}
