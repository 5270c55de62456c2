package appointments

import "time"

// Request es la solicitud transitoria armada desde la consola.
// No se persiste: se valida, se expande, se envía y se descarta.
type Request struct {
	SubjectID       string
	Start           time.Time
	End             time.Time
	SplitAcrossDays bool
	Notes           string
	Kind            Kind
}

// Interval es un tramo concreto producido por la expansión.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewAppointment es lo que recibe el colaborador de persistencia por cada tramo.
type NewAppointment struct {
	SubjectID string
	Start     time.Time
	End       time.Time
	Notes     string
	Kind      Kind
	Status    Status
}

// Appointment es la cita ya persistida.
type Appointment struct {
	ID        string
	SubjectID string

	Start time.Time
	End   time.Time

	Notes  string
	Kind   Kind
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
