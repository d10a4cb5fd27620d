// Package health maintains a cached snapshot of service health so the
// endpoint stays cheap under load.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"authgate/internal/infra/hashpool"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

const refreshInterval = 60 * time.Second

// Status is the externally visible health snapshot.
type Status struct {
	Status        string    `json:"status"`
	Database      string    `json:"database"`
	ActiveWorkers int       `json:"activeWorkers"`
	QueueDepth    int       `json:"queueDepth"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// Checker refreshes the snapshot in the background; handlers read the cache.
type Checker struct {
	mu     sync.RWMutex
	cached Status

	db     *gorm.DB
	pool   *hashpool.Pool
	logger *slog.Logger
}

// Params defines the dependencies for the health checker. DB is optional:
// with the in-memory repository there is nothing to ping.
type Params struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB `optional:"true"`
	Pool   *hashpool.Pool
	Logger *slog.Logger
}

// New constructs the checker and schedules the background refresh.
func New(params Params) *Checker {
	checker := &Checker{
		db:     params.DB,
		pool:   params.Pool,
		logger: params.Logger,
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			checker.refresh(ctx)
			go checker.loop(refreshCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})

	return checker
}

// Current returns the cached snapshot.
func (c *Checker) Current() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cached
}

func (c *Checker) loop(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

func (c *Checker) refresh(ctx context.Context) {
	status := Status{
		Status:    "ok",
		Database:  "memory",
		CheckedAt: time.Now(),
	}

	if c.pool != nil {
		snap := c.pool.Snapshot()
		status.ActiveWorkers = snap.ActiveWorkers
		status.QueueDepth = snap.QueueDepth
		if snap.ActiveWorkers == 0 {
			status.Status = "degraded"
		}
	}

	if c.db != nil {
		status.Database = "ok"
		if err := c.pingDatabase(ctx); err != nil {
			status.Database = "unreachable"
			status.Status = "degraded"
			c.logger.LogAttrs(ctx, slog.LevelWarn, "health check database ping failed",
				slog.String("error", err.Error()),
			)
		}
	}

	c.mu.Lock()
	c.cached = status
	c.mu.Unlock()
}

func (c *Checker) pingDatabase(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(pingCtx)
}
