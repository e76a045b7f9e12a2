package memory_test

import (
	"errors"
	"fmt"
	"testing"

	"missioncontrol/internal/infra/persistence/memory"
	"missioncontrol/pkg/domain"
)

var errInjected = errors.New("injected allocation failure")

// flakyAllocator refuses the reservations whose 1-based call numbers are
// listed in failing and tracks the net reserved footprint.
type flakyAllocator struct {
	failing  map[int]bool
	calls    int
	reserved int64
}

func newFlakyAllocator(failing ...int) *flakyAllocator {
	a := &flakyAllocator{failing: make(map[int]bool, len(failing))}
	for _, n := range failing {
		a.failing[n] = true
	}
	return a
}

func (a *flakyAllocator) Reserve(bytes int64) error {
	a.calls++
	if a.failing[a.calls] {
		return errInjected
	}
	a.reserved += bytes
	return nil
}

func (a *flakyAllocator) Release(bytes int64) { a.reserved -= bytes }

func (a *flakyAllocator) failNext() { a.failing[a.calls+1] = true }

func newStore(t *testing.T, capacity int, opts ...memory.Option) *memory.Store {
	t.Helper()
	store, err := memory.NewStore(capacity, opts...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func mustCreate(t *testing.T, store *memory.Store, id int) domain.Mission {
	t.Helper()
	m, err := store.CreateMission(id, fmt.Sprintf("Mission-%d", id), "2026-10-14")
	if err != nil {
		t.Fatalf("create mission %d: %v", id, err)
	}
	return m
}

func mustAppend(t *testing.T, store *memory.Store, missionID int, message string) domain.CommunicationEntry {
	t.Helper()
	entry, err := store.AppendCommunication(missionID, "2026-10-14 12:00", domain.PriorityRoutine, message)
	if err != nil {
		t.Fatalf("append to mission %d: %v", missionID, err)
	}
	return entry
}

func requireKind(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
