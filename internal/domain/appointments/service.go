package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("appointment not found")
	ErrBadTransition  = errors.New("invalid status transition")
	ErrSubjectUnknown = errors.New("subject not found")
)

// Service es el store local de citas. Implementa Creator.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in NewAppointment) (Appointment, error) {
	if strings.TrimSpace(in.SubjectID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if !in.End.After(in.Start) {
		return Appointment{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindNormal
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		SubjectID: strings.TrimSpace(in.SubjectID),
		Start:     in.Start,
		End:       in.End,
		Notes:     strings.TrimSpace(in.Notes),
		Kind:      kind,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	filter.Limit = filter.NormalizedLimit()
	return s.repo.List(ctx, filter)
}

// UpdateStatus aplica transiciones del detalle de cita:
// pending -> arrived|completed|cancelled, arrived -> completed|cancelled.
// completed y cancelled son terminales.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (Appointment, error) {
	if !next.Valid() {
		return Appointment{}, ErrInvalidInput
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if !canTransition(current.Status, next) {
		return Appointment{}, ErrBadTransition
	}

	if err := s.repo.UpdateStatus(ctx, current.ID, next, s.now()); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetByID(ctx, current.ID)
}

func canTransition(from, to Status) bool {
	if from == to || from.Terminal() {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusArrived || to == StatusCompleted || to == StatusCancelled
	case StatusArrived:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}
