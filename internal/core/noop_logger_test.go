package core

import (
	"context"
	"testing"
	"time"
)

func TestNoopSinksAcceptCalls(_ *testing.T) {
	logger := noopLogger{}
	logger.Debug("debug", "key", "value")
	logger.Info("info", "key", "value")
	logger.Warn("warn", "key", "value")
	logger.Error("error", "key", "value")

	ctx := context.Background()
	noopMetrics{}.Observe(ctx, OpCreateMission, true, time.Millisecond)
	noopAudit{}.Record(ctx, AuditEntry{Operation: OpCreateMission})
	_, span := noopTracer{}.Start(ctx, OpCreateMission)
	span.End(nil)
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	if got := ClockFunc(func() time.Time { return fixed }).Now(); !got.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, got)
	}
	if (systemClock{}).Now().Location() != time.UTC {
		t.Fatalf("system clock must report UTC")
	}
}
