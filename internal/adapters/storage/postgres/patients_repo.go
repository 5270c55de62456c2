package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

const patientColumns = `
	id, name, species, breed, sex,
	birth_date,
	owner_name, owner_phone, owner_email,
	notes, created_at, updated_at
`

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		p.Owner.Name,
		p.Owner.Phone,
		p.Owner.Email,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context, q string, limit int) ([]patients.Patient, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR owner_name ILIKE '%' || $1 || '%'
		ORDER BY lower(name) ASC
		LIMIT $2
	`, strings.TrimSpace(q), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPatient(s rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var species, sex string
	var bd sql.NullTime
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&species,
		&p.Breed,
		&sex,
		&bd,
		&p.Owner.Name,
		&p.Owner.Phone,
		&p.Owner.Email,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}

	p.Species = patients.Species(species)
	p.Sex = patients.Sex(sex)
	if bd.Valid {
		// birth_date es DATE: pgx lo devuelve a medianoche UTC
		t := bd.Time
		p.BirthDate = &t
	}
	return p, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
