package patients

import "context"

type Repository interface {
	Create(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	// List busca por nombre del paciente o del dueño (q vacío = todos).
	List(ctx context.Context, q string, limit int) ([]Patient, error)
}
