package locks

import (
	"context"
	"errors"
	"time"
)

var ErrNotOwner = errors.New("lock not owned by this client")

// Locker evita envíos superpuestos de la misma solicitud.
// TryLock devuelve el token de dueño; Unlock solo libera si el token coincide.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Unlock(ctx context.Context, key, token string) error
}
