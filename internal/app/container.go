package app

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/botboard/backend/internal/cache"
	"github.com/botboard/backend/internal/config"
	"github.com/botboard/backend/internal/observability"
	analyticssvc "github.com/botboard/backend/internal/services/analytics"
	backupsvc "github.com/botboard/backend/internal/services/backup"
	historysvc "github.com/botboard/backend/internal/services/history"
	ingestsvc "github.com/botboard/backend/internal/services/ingest"
	reportssvc "github.com/botboard/backend/internal/services/reports"
	"github.com/botboard/backend/internal/store"
)

// Container aggregates runtime dependencies for handlers and services.
type Container struct {
	Config            *config.Config
	DBPool            *pgxpool.Pool
	Redis             *redis.Client
	Store             *store.Store
	Ingest            *ingestsvc.Service
	Analytics         *analyticssvc.Service
	Reports           *reportssvc.Service
	History           *historysvc.Service
	Backup            *backupsvc.Service
	DashboardCache    *cache.DashboardCache
	Observability     *observability.Provider
	ReportingLocation *time.Location
}

// NewContainer builds a dependency container from the provided primitives.
// redisClient may be nil; the dashboard cache is then disabled.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if pool == nil {
		return nil, fmt.Errorf("db pool is required")
	}

	loc := cfg.ReportingLocation()
	st := store.New(pool)

	return &Container{
		Config:            cfg,
		DBPool:            pool,
		Redis:             redisClient,
		Store:             st,
		Ingest:            ingestsvc.NewService(pool, st, cfg.Pricing.USDPer1KTokens),
		Analytics:         analyticssvc.NewService(st, loc, cfg.Reporting.DefaultDays),
		Reports:           reportssvc.NewService(st),
		History:           historysvc.NewService(st, loc),
		Backup:            backupsvc.NewService(st),
		DashboardCache:    cache.NewDashboardCache(redisClient, cfg.Redis.DashboardTTL),
		Observability:     observability.Setup(cfg.Observability),
		ReportingLocation: loc,
	}, nil
}
