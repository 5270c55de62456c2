package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vet-clinic-scheduling/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}

	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if filter.SubjectID != "" && a.SubjectID != filter.SubjectID {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, a.Status) {
			continue
		}
		if filter.From != nil && a.Start.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Start.After(*filter.To) {
			continue
		}
		out = append(out, a)
	}

	// Orden por inicio asc (como el calendario); desempate por ID para salida estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})

	if limit := filter.NormalizedLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id string, status appointments.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	r.byID[id] = a
	return nil
}

func hasStatus(list []appointments.Status, s appointments.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
