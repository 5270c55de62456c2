package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic-scheduling/internal/ports/locks"
)

func TestLocker_SecondTryLockIsRejectedUntilUnlock(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	token, ok, err := l.TryLock(ctx, "k", time.Minute)
	if err != nil || !ok || token == "" {
		t.Fatalf("expected first lock, got token=%q ok=%v err=%v", token, ok, err)
	}

	if _, ok, _ := l.TryLock(ctx, "k", time.Minute); ok {
		t.Fatalf("expected second lock to be rejected")
	}

	if err := l.Unlock(ctx, "k", "other"); !errors.Is(err, locks.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := l.Unlock(ctx, "k", token); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, ok, _ := l.TryLock(ctx, "k", time.Minute); !ok {
		t.Fatalf("expected lock after release")
	}
}

func TestLocker_ExpiredLockCanBeRetaken(t *testing.T) {
	l := NewLocker()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if _, ok, _ := l.TryLock(context.Background(), "k", time.Second); !ok {
		t.Fatalf("expected first lock")
	}

	now = now.Add(2 * time.Second)
	if _, ok, _ := l.TryLock(context.Background(), "k", time.Second); !ok {
		t.Fatalf("expected lock after ttl")
	}
}

func TestLocker_CancelledContext(t *testing.T) {
	l := NewLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := l.TryLock(ctx, "k", time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
