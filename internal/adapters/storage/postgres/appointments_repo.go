package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, subject_id,
	start_at, end_at,
	notes, kind, status,
	created_at, updated_at
`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.SubjectID,
		a.Start.UTC(),
		a.End.UTC(),
		a.Notes,
		string(a.Kind),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`)

	args := []any{}
	argN := 1

	if s := strings.TrimSpace(filter.SubjectID); s != "" {
		sb.WriteString(fmt.Sprintf(" AND subject_id = $%d", argN))
		args = append(args, s)
		argN++
	}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(st))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND start_at >= $%d", argN))
		args = append(args, filter.From.UTC())
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND start_at <= $%d", argN))
		args = append(args, filter.To.UTC())
		argN++
	}

	sb.WriteString(" ORDER BY start_at ASC, id ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, filter.NormalizedLimit())

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id string, status appointments.Status, updatedAt time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(s rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var kind, status string
	if err := s.Scan(
		&a.ID,
		&a.SubjectID,
		&a.Start,
		&a.End,
		&a.Notes,
		&kind,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	a.Kind = appointments.Kind(kind)
	a.Status = appointments.Status(status)
	return a, nil
}
