package core

import (
	"context"
	"time"

	"missioncontrol/pkg/domain"
)

// Logger is the structured logging surface used by Service. *slog.Logger
// satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock supplies timestamps for durations and audit entries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// MetricsRecorder observes the outcome and latency of service operations.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// Tracer opens a span around each service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed with the operation's error, nil on success.
type TraceSpan interface {
	End(err error)
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// AuditStatus reports whether an audited mutation succeeded.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating operation against the mission store.
type AuditEntry struct {
	ID         string           `json:"id"`
	Operation  string           `json:"operation"`
	MissionID  int              `json:"mission_id"`
	LogID      int              `json:"log_id,omitempty"`
	Status     AuditStatus      `json:"status"`
	ErrorKind  domain.ErrorKind `json:"error_kind,omitempty"`
	Error      string           `json:"error,omitempty"`
	Duration   time.Duration    `json:"duration"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// AuditRecorder receives an entry for every mutating call (mission creation,
// communication append, state import), whether it succeeded or not.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, AuditEntry) {}

// ErrorKindOf classifies err for callers that only import core.
func ErrorKindOf(err error) domain.ErrorKind {
	return domain.KindOf(err)
}
