package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gatehouse/authengine/internal/infrastructure/spool"
)

// RetentionConfig controls how often and how far back the spool is trimmed.
type RetentionConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// AuditRetention periodically trims old records out of the audit spool.
type AuditRetention struct {
	store  *spool.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RetentionConfig
}

func NewAuditRetention(store *spool.Store, logger *zap.Logger, cfg RetentionConfig) *AuditRetention {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ar := &AuditRetention{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = ar.cron.AddFunc(schedule, ar.sweep)

	return ar
}

// Start launches the cron scheduler.
func (ar *AuditRetention) Start() {
	if ar == nil || ar.cron == nil {
		return
	}
	ar.cron.Start()
	ar.logger.Info("audit retention started", zap.Duration("retention", ar.cfg.Retention))
}

// Stop halts the scheduler without waiting for a running sweep.
func (ar *AuditRetention) Stop() {
	if ar == nil || ar.cron == nil {
		return
	}
	ar.cron.Stop()
}

func (ar *AuditRetention) sweep() {
	cutoff := time.Now().Add(-ar.cfg.Retention)
	if err := ar.store.Cleanup(cutoff); err != nil {
		ar.logger.Error("audit spool cleanup failed", zap.Error(err))
		return
	}
	if size, err := ar.store.Size(); err == nil {
		ar.logger.Debug("audit spool trimmed", zap.Int("remaining", size))
	}
}
