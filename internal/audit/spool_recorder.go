package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gatehouse/authengine/internal/infrastructure/spool"
)

type spoolRecorder struct {
	store  *spool.Store
	logger *zap.Logger
}

// NewSpoolRecorder persists audit events to the durable spool. Emission is
// best-effort: a spool failure is logged, never surfaced to the workflow.
func NewSpoolRecorder(store *spool.Store, logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &spoolRecorder{store: store, logger: logger}
}

func (r *spoolRecorder) Emit(_ context.Context, event Event) {
	if r.store == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn("audit event encode failed", zap.Error(err))
		return
	}
	if err := r.store.Append(event.At, payload); err != nil {
		r.logger.Warn("audit spool append failed", zap.Error(err))
	}
}
