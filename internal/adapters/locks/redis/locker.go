package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"vet-clinic-scheduling/internal/platform/logger"
	"vet-clinic-scheduling/internal/ports/locks"
)

// borra la clave solo si el valor sigue siendo nuestro token.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
if redis.call("EXISTS", KEYS[1]) == 1 then
	return -1
end
return 0
`)

type Locker struct {
	rdb goredis.UniversalClient
	log logger.Logger
}

func NewLocker(rdb goredis.UniversalClient, log logger.Logger) *Locker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Locker{rdb: rdb, log: log}
}

var _ locks.Locker = (*Locker)(nil)

// NewClient arma el cliente y hace ping.
func NewClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	acquired, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		l.log.Error("lock: setnx failed", map[string]any{"key": key, "err": err})
		return "", false, err
	}
	if !acquired {
		l.log.Info("lock: not acquired", map[string]any{"key": key})
		return "", false, nil
	}

	l.log.Debug("lock: acquired", map[string]any{"key": key, "ttl": ttl.String()})
	return token, true, nil
}

func (l *Locker) Unlock(ctx context.Context, key, token string) error {
	res, err := unlockScript.Run(ctx, l.rdb, []string{key}, token).Int()
	if err != nil && !errors.Is(err, goredis.Nil) {
		l.log.Error("lock: unlock failed", map[string]any{"key": key, "err": err})
		return err
	}

	if res < 0 {
		l.log.Warn("lock: ownership mismatch", map[string]any{"key": key})
		return locks.ErrNotOwner
	}
	return nil
}
