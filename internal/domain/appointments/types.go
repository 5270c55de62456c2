package appointments

import "strings"

// Kind es el tipo de cita. Extensible.
// @Enum normal, surgery, vaccination, grooming
type Kind string

const (
	KindNormal      Kind = "normal"
	KindSurgery     Kind = "surgery"
	KindVaccination Kind = "vaccination"
	KindGrooming    Kind = "grooming"
)

// Status lo define el backend; el pipeline solo crea en pending.
// @Enum pending, arrived, completed, cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusArrived, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// View es la granularidad del calendario activo en la consola.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// ParseView normaliza el valor recibido. Vacío o desconocido => day (el más estricto).
func ParseView(s string) View {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewWeek:
		return ViewWeek
	case ViewMonth:
		return ViewMonth
	default:
		return ViewDay
	}
}

// Coarse indica si la vista no puede expresar precisión intra-día.
func (v View) Coarse() bool {
	return v == ViewMonth
}

// Reason es el motivo tipado de un rechazo de validación.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonPastDate       Reason = "past_date"
	ReasonInvertedRange  Reason = "inverted_range"
	ReasonMissingSubject Reason = "missing_subject"
)

// State del pipeline de envío.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateRejected        State = "rejected"
	StateExpanding       State = "expanding"
	StateSubmitting      State = "submitting"
	StateCompleted       State = "completed"
	StatePartiallyFailed State = "partially_failed"
)

func (s State) Terminal() bool {
	return s == StateRejected || s == StateCompleted || s == StatePartiallyFailed
}
