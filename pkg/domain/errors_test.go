package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := InvalidArgument("create_mission", "name", "must not be empty")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument match")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected not found match")
	}
	wrapped := fmt.Errorf("service: %w", err)
	if !errors.Is(wrapped, ErrInvalidArgument) {
		t.Fatalf("expected match through wrapping")
	}
	if KindOf(wrapped) != KindInvalidArgument {
		t.Fatalf("expected kind through wrapping, got %q", KindOf(wrapped))
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := Conflict("create_mission", EntityMission, 3)
	if got := err.Error(); got != "create_mission: conflict: mission 3 already exists" {
		t.Fatalf("unexpected message %q", got)
	}
	field := InvalidArgument("append_communication", "message", "exceeds %d bytes", MaxMessageLength)
	if !strings.Contains(field.Error(), "(message)") || !strings.Contains(field.Error(), "256") {
		t.Fatalf("unexpected message %q", field.Error())
	}
	nf := NotFound("append_communication", EntityMission, 9)
	if !strings.Contains(nf.Error(), "mission 9 not found") {
		t.Fatalf("unexpected message %q", nf.Error())
	}
}

func TestResourceExhaustedUnwrapsCause(t *testing.T) {
	cause := errors.New("budget exceeded")
	err := ResourceExhausted("grow", cause)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("expected resource exhausted")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if !strings.HasSuffix(err.Error(), "budget exceeded") {
		t.Fatalf("expected cause in message, got %q", err.Error())
	}
}

func TestKindOfNonStoreError(t *testing.T) {
	if KindOf(nil) != "" {
		t.Fatalf("nil error must have no kind")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("plain error must have no kind")
	}
}
