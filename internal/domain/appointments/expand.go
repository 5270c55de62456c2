package appointments

import (
	"errors"
	"time"

	"vet-clinic-scheduling/internal/platform/dates"
)

// WorkingHours es la ventana fija que se aplica a cada día cuando una cita
// se parte en varios días. No se deriva del inicio/fin pedidos.
// TODO(agenda): confirmar con la clínica si los días 2..N deberían conservar
// la hora elegida por el usuario en lugar de la ventana fija.
type WorkingHours struct {
	Location *time.Location

	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// DefaultWorkingHours es 09:00–17:00 en la zona de la clínica.
func DefaultWorkingHours(loc *time.Location) WorkingHours {
	if loc == nil {
		loc = time.UTC
	}
	return WorkingHours{Location: loc, OpenHour: 9, CloseHour: 17}
}

var ErrInvalidWorkingHours = errors.New("workday end must be after workday start")

// ParseWorkingHours arma la ventana desde "HH:MM". El cierre debe ser
// posterior a la apertura.
func ParseWorkingHours(loc *time.Location, open, close string) (WorkingHours, error) {
	wh := DefaultWorkingHours(loc)

	h, m, err := dates.ParseClock(open)
	if err != nil {
		return WorkingHours{}, err
	}
	wh.OpenHour, wh.OpenMinute = h, m

	h, m, err = dates.ParseClock(close)
	if err != nil {
		return WorkingHours{}, err
	}
	wh.CloseHour, wh.CloseMinute = h, m

	if wh.CloseHour*60+wh.CloseMinute <= wh.OpenHour*60+wh.OpenMinute {
		return WorkingHours{}, ErrInvalidWorkingHours
	}
	return wh, nil
}

func (w WorkingHours) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Expand convierte una Request en uno o más tramos, ordenados por fecha.
// Es pura: misma entrada, misma salida.
//
// Sin split, o si DaysBetween(start, end) <= 1, devuelve el rango tal cual.
// Con split devuelve N tramos [día_i open, día_i close], i = 0..N-1.
func Expand(req Request, wh WorkingHours) []Interval {
	n := dates.DaysBetween(req.Start, req.End)
	if !req.SplitAcrossDays || n <= 1 {
		return []Interval{{Start: req.Start, End: req.End}}
	}

	loc := wh.location()
	first := req.Start.In(loc)

	out := make([]Interval, 0, n)
	for i := 0; i < n; i++ {
		// Solo la fecha calendario; la hora sale de la ventana.
		day := first.AddDate(0, 0, i)
		out = append(out, Interval{
			Start: dates.AtClock(day, wh.OpenHour, wh.OpenMinute, loc),
			End:   dates.AtClock(day, wh.CloseHour, wh.CloseMinute, loc),
		})
	}
	return out
}
