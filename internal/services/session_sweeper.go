package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gatehouse/authengine/repository"
)

// SweeperConfig controls the expired-session cleanup schedule.
type SweeperConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// SessionSweeper deletes session rows whose age exceeds the timeout. This is
// storage hygiene only: liveness is re-derived from last_access_time on
// every check, so correctness never depends on this job running. It uses
// the exact same age predicate as the liveness check.
type SessionSweeper struct {
	sessions repository.SessionStore
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      SweeperConfig
}

func NewSessionSweeper(sessions repository.SessionStore, logger *zap.Logger, cfg SweeperConfig) *SessionSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sw := &SessionSweeper{
		sessions: sessions,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = sw.cron.AddFunc(schedule, sw.sweep)

	return sw
}

// Start launches the cron scheduler.
func (sw *SessionSweeper) Start() {
	if sw == nil || sw.cron == nil {
		return
	}
	sw.cron.Start()
	sw.logger.Info("session sweeper started", zap.Duration("interval", sw.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (sw *SessionSweeper) Stop(ctx context.Context) {
	if sw == nil || sw.cron == nil {
		return
	}
	stopCtx := sw.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (sw *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sw.cfg.Interval)
	defer cancel()

	removed, err := sw.sessions.DeleteExpired(ctx, sw.cfg.Timeout)
	if err != nil {
		sw.logger.Error("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		sw.logger.Info("expired sessions removed", zap.Int64("count", removed))
	}
}
