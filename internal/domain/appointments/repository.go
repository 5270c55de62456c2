package appointments

import (
	"context"
	"time"
)

// Store es lo que consumen las pantallas de lista/detalle/estado.
// Lo implementan el Service local y el cliente del backend REST.
type Store interface {
	Creator
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, next Status) (Appointment, error)
}

// SubjectChecker confirma que el subject_id existe antes de enviar.
type SubjectChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}

// ListFilter: From/To filtran por Start (inclusive).
type ListFilter struct {
	SubjectID string
	Statuses  []Status
	From      *time.Time
	To        *time.Time
	Limit     int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// NormalizedLimit aplica default y tope.
func (f ListFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
