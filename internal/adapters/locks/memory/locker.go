package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vet-clinic-scheduling/internal/ports/locks"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// Locker es el fallback en proceso cuando no hay REDIS_ADDR.
// Solo protege contra envíos superpuestos dentro de la misma instancia.
type Locker struct {
	mu   sync.Mutex
	held map[string]entry
	now  func() time.Time
}

func NewLocker() *Locker {
	return &Locker{
		held: make(map[string]entry),
		now:  time.Now,
	}
}

var _ locks.Locker = (*Locker)(nil)

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.held[key]; ok && now.Before(e.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = entry{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *Locker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.held[key]
	if !ok || !l.now().Before(e.expiresAt) {
		delete(l.held, key)
		return nil
	}
	if e.token != token {
		return locks.ErrNotOwner
	}
	delete(l.held, key)
	return nil
}
