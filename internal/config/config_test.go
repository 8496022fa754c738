package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DASH_DATABASE_URL", "")

	_, err := Load(Options{EnvFile: "testdata/empty.env"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "DASH_DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DASH_DATABASE_URL", "postgres://localhost:5432/botboard")

	cfg, err := Load(Options{EnvFile: "testdata/empty.env"})
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.ListenAddr)
	require.Equal(t, 3, cfg.Reporting.UTCOffsetHours)
	require.Equal(t, 7, cfg.Reporting.DefaultDays)
	require.Equal(t, 0.002, cfg.Pricing.USDPer1KTokens)
	require.Equal(t, 15*time.Second, cfg.Redis.DashboardTTL)
	require.True(t, cfg.Database.RunMigrations)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DASH_DATABASE_URL", "postgres://localhost:5432/botboard")
	t.Setenv("DASH_SERVER_LISTEN_ADDR", ":9090")
	t.Setenv("DASH_REPORTING_DEFAULT_DAYS", "30")

	cfg, err := Load(Options{EnvFile: "testdata/empty.env"})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.ListenAddr)
	require.Equal(t, 30, cfg.Reporting.DefaultDays)
}

func TestReportingLocation(t *testing.T) {
	cfg := &Config{Reporting: ReportingConfig{UTCOffsetHours: 3}}
	loc := cfg.ReportingLocation()

	instant := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "01.06.2025 15:00", instant.In(loc).Format("02.01.2006 15:04"))
}
