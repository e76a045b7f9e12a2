package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"missioncontrol/pkg/domain"
)

func TestPrometheusRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg, "missioncontrol")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := newTestService(t, 1, WithMetricsRecorder(rec))
	ctx := context.Background()
	if _, err := svc.CreateMission(ctx, 1, "Skylab", "2026-10-14"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateMission(ctx, 1, "Skylab", "2026-10-14"); err == nil {
		t.Fatalf("expected conflict")
	}
	if _, err := svc.AppendCommunication(ctx, 1, "2026-10-14 11:00", domain.PriorityRoutine, "ok"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if got := testutil.ToFloat64(rec.operations.WithLabelValues(OpCreateMission, "success")); got != 1 {
		t.Fatalf("expected 1 create success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues(OpCreateMission, "error")); got != 1 {
		t.Fatalf("expected 1 create error, got %v", got)
	}
	if n := testutil.CollectAndCount(rec.durations, "missioncontrol_operation_duration_seconds"); n != 2 {
		t.Fatalf("expected histograms for 2 operations, got %d", n)
	}
	rec.Observe(ctx, "", true, time.Second)
	if n := testutil.CollectAndCount(rec.operations); n != 3 {
		t.Fatalf("empty operation must not create series, got %d", n)
	}
}

func TestPrometheusRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg, "dup"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg, "dup"); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := NewPrometheusMetricsRecorder(nil, "unregistered"); err != nil {
		t.Fatalf("nil registerer must be allowed: %v", err)
	}
}

func TestStoreCollectorReportsSizes(t *testing.T) {
	svc := newTestService(t, 1)
	ctx := context.Background()
	for id := 1; id <= 3; id++ {
		if _, err := svc.CreateMission(ctx, id, "Pioneer", "2026-10-14"); err != nil {
			t.Fatalf("create %d: %v", id, err)
		}
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.AppendCommunication(ctx, 3, "2026-10-14 12:00", domain.PriorityRoutine, "ping"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	collector := NewStoreCollector("missioncontrol", svc.Store())
	expected := `
# HELP missioncontrol_missions Live missions in the store.
# TYPE missioncontrol_missions gauge
missioncontrol_missions 3
# HELP missioncontrol_mission_capacity Allocated mission slots.
# TYPE missioncontrol_mission_capacity gauge
missioncontrol_mission_capacity 4
# HELP missioncontrol_communications Log entries across all missions.
# TYPE missioncontrol_communications gauge
missioncontrol_communications 5
# HELP missioncontrol_communication_capacity Allocated log slots across all missions.
# TYPE missioncontrol_communication_capacity gauge
missioncontrol_communication_capacity 16
`
	if err := testutil.CollectAndCompare(collector, strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected store metrics: %v", err)
	}
}
