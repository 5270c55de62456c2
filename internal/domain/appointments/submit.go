package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/platform/logger"
)

// Creator es la operación externa "crear cita".
// Puede ser el store local (Service) o el backend REST de la clínica.
type Creator interface {
	Create(ctx context.Context, in NewAppointment) (Appointment, error)
}

// Notifier avisa que la lista de citas cambió y debe recargarse completa.
type Notifier interface {
	AppointmentsChanged(ctx context.Context, subjectID string) error
}

// Outcome resume un envío. Attempted es la cantidad de tramos producidos,
// no la cantidad de llamadas hechas.
type Outcome struct {
	State  State
	Reason Reason

	Attempted      int
	Succeeded      int
	FailedIndex    int
	FailureMessage string

	Created []Appointment

	// RefreshRequired: el llamador debe recargar la lista completa desde la fuente.
	RefreshRequired bool

	cause error
}

// Err devuelve *PersistenceError si el envío quedó parcial; nil en otro caso.
func (o Outcome) Err() error {
	if o.State != StatePartiallyFailed {
		return nil
	}
	return &PersistenceError{
		Message:   o.FailureMessage,
		Attempted: o.Attempted,
		Succeeded: o.Succeeded,
		Err:       o.cause,
	}
}

// PersistenceError: falló la creación de un tramo. Los tramos previos quedan creados.
type PersistenceError struct {
	Message   string
	Attempted int
	Succeeded int
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("appointments: persisted %d of %d intervals: %s", e.Succeeded, e.Attempted, e.Message)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Submitter struct {
	creator  Creator
	subjects SubjectChecker
	notifier Notifier
	hours    WorkingHours
	log      logger.Logger
	now      func() time.Time
}

type SubmitterOption func(*Submitter)

func WithNotifier(n Notifier) SubmitterOption {
	return func(s *Submitter) { s.notifier = n }
}

// WithSubjects hace que Submit confirme que el paciente existe una vez
// que la solicitud pasó el guard.
func WithSubjects(c SubjectChecker) SubmitterOption {
	return func(s *Submitter) { s.subjects = c }
}

func WithLogger(l logger.Logger) SubmitterOption {
	return func(s *Submitter) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock reemplaza el proveedor de "ahora" (tests, o reloj de la consola).
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSubmitter(creator Creator, hours WorkingHours, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		creator: creator,
		hours:   hours,
		log:     logger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hours expone la ventana configurada (la usa el preview HTTP).
func (s *Submitter) Hours() WorkingHours { return s.hours }

// Submit valida, expande y crea los tramos de a uno, en orden ascendente.
// Se detiene en el primer fallo: sin rollback y sin intentar los restantes.
//
// El único punto de cancelación es antes de empezar a persistir; en ese caso
// devuelve ctx.Err(). Una vez en submitting la secuencia no se aborta.
// Si el paciente no existe devuelve ErrSubjectUnknown sin crear nada.
func (s *Submitter) Submit(ctx context.Context, req Request, view View) (Outcome, error) {
	log := s.log.With(map[string]any{
		"subject_id": req.SubjectID,
		"split":      req.SplitAcrossDays,
		"view":       string(view),
	})

	run := &stateTracker{state: StateIdle, log: log}

	if err := ctx.Err(); err != nil {
		return Outcome{State: StateIdle, FailedIndex: -1}, err
	}

	run.to(StateValidating)
	res := Validate(req, s.now(), view, s.hours.location())
	if !res.OK {
		run.to(StateRejected)
		log.Info("appointment request rejected", map[string]any{"reason": string(res.Reason)})
		return Outcome{State: StateRejected, Reason: res.Reason, FailedIndex: -1}, nil
	}

	if s.subjects != nil {
		exists, err := s.subjects.Exists(ctx, req.SubjectID)
		if err != nil {
			run.to(StateIdle)
			return Outcome{State: StateIdle, FailedIndex: -1}, fmt.Errorf("appointments: subject lookup: %w", err)
		}
		if !exists {
			run.to(StateIdle)
			return Outcome{State: StateIdle, FailedIndex: -1}, ErrSubjectUnknown
		}
	}

	run.to(StateExpanding)
	intervals := Expand(req, s.hours)

	if err := ctx.Err(); err != nil {
		return Outcome{State: StateIdle, FailedIndex: -1}, err
	}

	run.to(StateSubmitting)

	kind := req.Kind
	if kind == "" {
		kind = KindNormal
	}
	notes := strings.TrimSpace(req.Notes)

	// Desde acá la cancelación del llamador no corta la secuencia.
	sctx := context.WithoutCancel(ctx)

	out := Outcome{
		Attempted:   len(intervals),
		FailedIndex: -1,
		Created:     make([]Appointment, 0, len(intervals)),
	}

	for i, iv := range intervals {
		a, err := s.creator.Create(sctx, NewAppointment{
			SubjectID: req.SubjectID,
			Start:     iv.Start,
			End:       iv.End,
			Notes:     notes,
			Kind:      kind,
			Status:    StatusPending,
		})
		if err != nil {
			out.FailedIndex = i
			out.FailureMessage = err.Error()
			out.cause = err
			log.Warn("appointment interval create failed", map[string]any{
				"index":     i,
				"start":     iv.Start,
				"succeeded": out.Succeeded,
				"attempted": out.Attempted,
				"error":     err,
			})
			break
		}
		out.Created = append(out.Created, a)
		out.Succeeded++
	}

	if out.FailedIndex >= 0 {
		out.State = StatePartiallyFailed
	} else {
		out.State = StateCompleted
	}
	run.to(out.State)
	out.RefreshRequired = true

	if s.notifier != nil {
		if err := s.notifier.AppointmentsChanged(sctx, req.SubjectID); err != nil {
			log.Warn("refresh notification failed", map[string]any{"error": err})
		}
	}

	log.Info("appointment request submitted", map[string]any{
		"state":     string(out.State),
		"attempted": out.Attempted,
		"succeeded": out.Succeeded,
	})
	return out, nil
}

// Preview corre guard + expansión sin persistir.
func (s *Submitter) Preview(req Request, view View) (ValidationResult, []Interval) {
	res := Validate(req, s.now(), view, s.hours.location())
	if !res.OK {
		return res, nil
	}
	return res, Expand(req, s.hours)
}

type stateTracker struct {
	state State
	log   logger.Logger
}

func (t *stateTracker) to(next State) {
	t.log.Debug("submission state", map[string]any{"from": string(t.state), "to": string(next)})
	t.state = next
}
