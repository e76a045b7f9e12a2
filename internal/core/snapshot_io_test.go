package core

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"missioncontrol/internal/infra/codec"
	"missioncontrol/pkg/domain"
)

func TestSnapshotWriteReadYAML(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t, 2)
	if _, err := src.CreateMission(ctx, 11, "Rosetta", "2004-03-02"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := src.AppendCommunication(ctx, 11, "2014-11-12 15:34", domain.PriorityUrgent, "philae down"); err != nil {
		t.Fatalf("append: %v", err)
	}

	var buf bytes.Buffer
	if err := src.WriteSnapshot(ctx, &buf, codec.FormatYAML); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	logger := &captureLogger{}
	dst := newTestService(t, 1, WithLogger(logger))
	if err := dst.ReadSnapshot(ctx, &buf, codec.FormatYAML); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	got, err := dst.GetMission(ctx, 11)
	if err != nil || len(got.Communications) != 1 {
		t.Fatalf("restored mission mismatch: %v %+v", err, got)
	}
	if logger.count("info") != 2 {
		t.Fatalf("expected ready and imported info lines, got %d", logger.count("info"))
	}
}

func TestSnapshotReadFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 1)
	if err := svc.ReadSnapshot(ctx, strings.NewReader(""), codec.FormatJSON); !errors.Is(err, codec.ErrEmptyPayload) {
		t.Fatalf("expected empty payload, got %v", err)
	}
	dup := `{"capacity":2,"missions":[{"id":1,"name":"A","launch_date":"2026-10-14","status":"planned","communications":[]},{"id":1,"name":"B","launch_date":"2026-10-14","status":"planned","communications":[]}]}`
	if err := svc.ReadSnapshot(ctx, strings.NewReader(dup), codec.FormatJSON); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected duplicate id conflict, got %v", err)
	}
	if err := svc.WriteSnapshot(ctx, &bytes.Buffer{}, "toml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestSnapshotReadIgnoresOversizedCapacity(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("capacity does not fit in int")
	}
	ctx := context.Background()
	svc := newTestService(t, 2)
	payload := `{"capacity": 1125899906842624, "missions": []}`
	if err := svc.ReadSnapshot(ctx, strings.NewReader(payload), codec.FormatJSON); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if svc.Store().Cap() != 2 {
		t.Fatalf("decoded capacity must not size the store, got %d", svc.Store().Cap())
	}
}
