package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/domain/appointments"
	"vet-clinic-scheduling/internal/platform/httpclient"
)

// Store habla con un backend de agenda externo (BACKEND_URL).
// Implementa appointments.Store y appointments.SubjectChecker.
type Store struct {
	c *httpclient.Client
}

func NewStore(c *httpclient.Client) *Store {
	return &Store{c: c}
}

var (
	_ appointments.Store          = (*Store)(nil)
	_ appointments.SubjectChecker = (*Store)(nil)
)

type appointmentDTO struct {
	ID        string    `json:"id,omitempty"`
	SubjectID string    `json:"subject_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Notes     string    `json:"notes"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (d appointmentDTO) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:        d.ID,
		SubjectID: d.SubjectID,
		Start:     d.Start,
		End:       d.End,
		Notes:     d.Notes,
		Kind:      appointments.Kind(d.Kind),
		Status:    appointments.Status(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *Store) Create(ctx context.Context, in appointments.NewAppointment) (appointments.Appointment, error) {
	body := appointmentDTO{
		SubjectID: in.SubjectID,
		Start:     in.Start.UTC(),
		End:       in.End.UTC(),
		Notes:     in.Notes,
		Kind:      string(in.Kind),
		Status:    string(in.Status),
	}

	var out appointmentDTO
	if err := s.c.DoJSON(ctx, http.MethodPost, "/appointments", nil, body, &out); err != nil {
		return appointments.Appointment{}, mapError(err)
	}
	return out.toDomain(), nil
}

func (s *Store) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	var out appointmentDTO
	if err := s.c.DoJSON(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return appointments.Appointment{}, mapError(err)
	}
	return out.toDomain(), nil
}

func (s *Store) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	q := url.Values{}
	if filter.SubjectID != "" {
		q.Set("subject_id", filter.SubjectID)
	}
	if len(filter.Statuses) > 0 {
		parts := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			parts = append(parts, string(st))
		}
		q.Set("status", strings.Join(parts, ","))
	}
	if filter.From != nil {
		q.Set("from", filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		q.Set("to", filter.To.UTC().Format(time.RFC3339))
	}
	q.Set("limit", strconv.Itoa(filter.NormalizedLimit()))

	var out []appointmentDTO
	if err := s.c.DoJSON(ctx, http.MethodGet, "/appointments", q, nil, &out); err != nil {
		return nil, mapError(err)
	}

	items := make([]appointments.Appointment, 0, len(out))
	for _, d := range out {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, next appointments.Status) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	body := map[string]string{"status": string(next)}
	var out appointmentDTO
	if err := s.c.DoJSON(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return appointments.Appointment{}, mapError(err)
	}
	return out.toDomain(), nil
}

// Exists consulta GET /patients/{id}; 404 = no existe.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	err := s.c.DoJSON(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, nil, nil)
	switch {
	case err == nil:
		return true, nil
	case httpclient.StatusCode(err) == http.StatusNotFound:
		return false, nil
	default:
		return false, err
	}
}

// mapError traduce status del backend a errores del dominio; el resto pasa envuelto.
func mapError(err error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", appointments.ErrNotFound, err)
	case http.StatusConflict:
		return fmt.Errorf("%w: %v", appointments.ErrBadTransition, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", appointments.ErrInvalidInput, err)
	default:
		return err
	}
}
