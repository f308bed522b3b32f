package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Outcome tags an audit event as a success or a failure.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one structured audit record. Fields carry non-sensitive
// identifiers only: user and session ids, counts, reasons. Raw credentials,
// raw tokens and full permission lists never go through here.
type Event struct {
	Name      string            `json:"name"`
	Outcome   Outcome           `json:"outcome"`
	Operation string            `json:"operation"`
	Fields    map[string]string `json:"fields,omitempty"`
	At        time.Time         `json:"at"`
}

// Recorder is the write-only audit collaborator.
type Recorder interface {
	Emit(ctx context.Context, event Event)
}

type zapRecorder struct {
	logger *zap.Logger
}

// NewZapRecorder emits audit events as structured log records.
func NewZapRecorder(logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapRecorder{logger: logger.Named("audit")}
}

func (r *zapRecorder) Emit(_ context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	fields := []zap.Field{
		zap.String("event", event.Name),
		zap.String("outcome", string(event.Outcome)),
		zap.String("operation", event.Operation),
		zap.Time("at", event.At),
	}
	for k, v := range event.Fields {
		fields = append(fields, zap.String(k, v))
	}
	r.logger.Info("audit", fields...)
}

type teeRecorder struct {
	recorders []Recorder
}

// Tee fans one event out to several recorders.
func Tee(recorders ...Recorder) Recorder {
	return &teeRecorder{recorders: recorders}
}

func (t *teeRecorder) Emit(ctx context.Context, event Event) {
	for _, r := range t.recorders {
		if r != nil {
			r.Emit(ctx, event)
		}
	}
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Emit(context.Context, Event) {}
