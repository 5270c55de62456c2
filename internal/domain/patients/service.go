package patients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

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

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Owner     Owner
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Patient{}, ErrInvalidInput
	}

	species := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if species == "" {
		species = SpeciesOther
	}
	if !species.Valid() {
		return Patient{}, ErrInvalidInput
	}

	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	switch sex {
	case SexMale, SexFemale, SexUnknown:
	case "":
		sex = SexUnknown
	default:
		return Patient{}, ErrInvalidInput
	}

	if strings.TrimSpace(in.Owner.Name) == "" {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Owner: Owner{
			Name:  strings.TrimSpace(in.Owner.Name),
			Phone: strings.TrimSpace(in.Owner.Phone),
			Email: strings.ToLower(strings.TrimSpace(in.Owner.Email)),
		},
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q string, limit int) ([]Patient, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, strings.TrimSpace(q), limit)
}

// Exists responde si el subject de una cita está registrado.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
