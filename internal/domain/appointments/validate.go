package appointments

import (
	"strings"
	"time"

	"vet-clinic-scheduling/internal/platform/dates"
)

// ValidationResult nunca es un error: los rechazos son entradas esperables.
type ValidationResult struct {
	OK     bool
	Reason Reason
}

func accepted() ValidationResult { return ValidationResult{OK: true} }

func rejected(r Reason) ValidationResult { return ValidationResult{OK: false, Reason: r} }

func (v ValidationResult) String() string {
	if v.OK {
		return "ok"
	}
	return string(v.Reason)
}

// Validate aplica las reglas de la consola:
//   - end <= start => inverted_range (siempre, primero)
//   - vista day/week => past_date si start < now
//   - vista month => past_date solo si el día de start es anterior al día de now
//
// La vista mensual no distingue horas.
// Los días se calculan en loc (zona de la clínica).
func Validate(req Request, now time.Time, view View, loc *time.Location) ValidationResult {
	if !req.End.After(req.Start) {
		return rejected(ReasonInvertedRange)
	}
	if strings.TrimSpace(req.SubjectID) == "" {
		return rejected(ReasonMissingSubject)
	}

	if loc == nil {
		loc = time.UTC
	}

	if view.Coarse() {
		if dates.StartOfDay(req.Start.In(loc)).Before(dates.StartOfDay(now.In(loc))) {
			return rejected(ReasonPastDate)
		}
		return accepted()
	}

	if req.Start.Before(now) {
		return rejected(ReasonPastDate)
	}
	return accepted()
}
