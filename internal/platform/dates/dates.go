package dates

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// OneDay es la duración usada para contar días entre instantes.
// Se cuenta en tiempo absoluto (24h), no en días de calendario.
const OneDay = 24 * time.Hour

// Formatos aceptados para valores de reloj sin zona.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ToUTCInstant normaliza un instante a su representación canónica en UTC.
func ToUTCInstant(t time.Time) time.Time {
	return t.UTC()
}

// ParseLocal interpreta un valor de reloj de pared.
// - RFC3339 (con offset) => se respeta el offset.
// - Sin zona => se lee en loc (zona de la clínica).
func ParseLocal(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("dates: empty value")
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dates: unsupported format %q", s)
}

// StartOfDay devuelve 00:00:00.000 del día de t, en la zona de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay devuelve 23:59:59.999 del día de t, en la zona de t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DaysBetween cuenta días de forma inclusiva: floor((b-a)/24h) + 1.
// El resto sub-diario se descarta siempre, también para rangos negativos.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	return int(math.Floor(float64(diff)/float64(OneDay))) + 1
}

// AtClock arma el instante hour:min del día calendario de day, leído en loc.
func AtClock(day time.Time, hour, min int, loc *time.Location) time.Time {
	if loc == nil {
		loc = day.Location()
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, loc)
}

// ParseClock lee "HH:MM" (p.ej. "09:00").
func ParseClock(s string) (hour, min int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("dates: clock must be HH:MM: %w", err)
	}
	return t.Hour(), t.Minute(), nil
}
