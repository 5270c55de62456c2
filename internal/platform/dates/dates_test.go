package dates

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tzdata %s not available: %v", name, err)
	}
	return loc
}

func TestDaysBetween_InclusiveFloor(t *testing.T) {
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same instant", base, 1},
		{"a few hours", base.Add(9 * time.Hour), 1},
		{"just under a day", base.Add(OneDay - time.Millisecond), 1},
		{"exactly one day", base.Add(OneDay), 2},
		{"two days two hours", time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), 3},
		{"negative span", base.Add(-time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(base, tc.end); got != tc.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStartEndOfDay_KeepLocation(t *testing.T) {
	loc := mustLoc(t, "America/Argentina/Buenos_Aires")
	in := time.Date(2024, 6, 10, 15, 30, 12, 0, loc)

	start := StartOfDay(in)
	if !start.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start of day: %s", start)
	}
	if start.Location() != loc {
		t.Fatalf("start of day changed location: %s", start.Location())
	}

	end := EndOfDay(in)
	want := time.Date(2024, 6, 10, 23, 59, 59, 999_000_000, loc)
	if !end.Equal(want) {
		t.Fatalf("unexpected end of day: %s want %s", end, want)
	}
}

func TestParseLocal(t *testing.T) {
	loc := mustLoc(t, "America/Argentina/Buenos_Aires") // UTC-3, sin DST

	got, err := ParseLocal("2024-06-10T09:00:00", loc)
	if err != nil {
		t.Fatalf("parse naive: %v", err)
	}
	if !got.Equal(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("naive value not read in clinic tz: %s", got.UTC())
	}

	got, err = ParseLocal("2024-06-10T09:00:00Z", loc)
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if !got.Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 offset not respected: %s", got)
	}

	if _, err := ParseLocal("10/06/2024", loc); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := ParseLocal("  ", loc); err == nil {
		t.Fatalf("expected error for empty value")
	}
}

func TestAtClock_UsesCalendarDateInLocation(t *testing.T) {
	loc := mustLoc(t, "America/Argentina/Buenos_Aires")

	// 01:00Z del 11 es todavía 22:00 del 10 en la clínica.
	day := time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC)
	got := AtClock(day, 9, 0, loc)
	if !got.Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, loc)) {
		t.Fatalf("unexpected clock instant: %s", got)
	}
}

func TestToUTCInstant(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	in := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)
	out := ToUTCInstant(in)
	if out.Location() != time.UTC || !out.Equal(in) {
		t.Fatalf("unexpected utc instant: %s", out)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("17:30")
	if err != nil || h != 17 || m != 30 {
		t.Fatalf("ParseClock = %d:%d err=%v", h, m, err)
	}
	if _, _, err := ParseClock("5pm"); err == nil {
		t.Fatalf("expected error")
	}
}
