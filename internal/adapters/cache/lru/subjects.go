package lru

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"vet-clinic-scheduling/internal/domain/appointments"
	"vet-clinic-scheduling/internal/platform/logger"
)

const DefaultSize = 1024

// SubjectCache memoiza las respuestas positivas de un SubjectChecker.
// Los negativos no se guardan: un paciente recién dado de alta tiene que verse enseguida.
type SubjectCache struct {
	next  appointments.SubjectChecker
	known *lru.Cache[string, struct{}]
	log   logger.Logger
}

func NewSubjectCache(next appointments.SubjectChecker, size int, log logger.Logger) (*SubjectCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	c, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &SubjectCache{next: next, known: c, log: log}, nil
}

var _ appointments.SubjectChecker = (*SubjectCache)(nil)

func (c *SubjectCache) Exists(ctx context.Context, id string) (bool, error) {
	if _, ok := c.known.Get(id); ok {
		c.log.Debug("cache.subject.hit", map[string]any{"subject_id": id})
		return true, nil
	}

	ok, err := c.next.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.known.Add(id, struct{}{})
	}
	return ok, nil
}
