package appointments

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tzdata not available for %s: %v", name, err)
	}
	return loc
}

func TestExpand_NoSplitReturnsInputUnchanged(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)

	got := Expand(Request{SubjectID: "A1", Start: start, End: end}, DefaultWorkingHours(time.UTC))
	if len(got) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(got))
	}
	if !got[0].Start.Equal(start) || !got[0].End.Equal(end) {
		t.Fatalf("expected input times, got %+v", got[0])
	}
}

func TestExpand_SingleDayIgnoresWindowEvenWithSplit(t *testing.T) {
	start := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)

	got := Expand(Request{SubjectID: "A1", Start: start, End: end, SplitAcrossDays: true}, DefaultWorkingHours(time.UTC))
	if len(got) != 1 || !got[0].Start.Equal(start) || !got[0].End.Equal(end) {
		t.Fatalf("expected original single interval, got %+v", got)
	}
}

func TestExpand_SplitProducesOneWindowPerDay(t *testing.T) {
	loc := mustLoc(t, "America/Argentina/Buenos_Aires")
	wh := DefaultWorkingHours(loc)

	// 2024-06-10T08:00Z -> 2024-06-12T10:00Z: floor(50h/24h)+1 = 3 días
	req := Request{
		SubjectID:       "A1",
		Start:           time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
		SplitAcrossDays: true,
	}

	got := Expand(req, wh)
	if len(got) != 3 {
		t.Fatalf("expected 3 intervals, got %d: %+v", len(got), got)
	}

	for i, iv := range got {
		// 08:00Z = 05:00 en Buenos Aires, mismo día calendario
		wantStart := time.Date(2024, 6, 10+i, 9, 0, 0, 0, loc)
		wantEnd := time.Date(2024, 6, 10+i, 17, 0, 0, 0, loc)
		if !iv.Start.Equal(wantStart) || !iv.End.Equal(wantEnd) {
			t.Fatalf("interval %d: expected [%s, %s], got [%s, %s]", i, wantStart, wantEnd, iv.Start, iv.End)
		}
		if i > 0 && !got[i-1].Start.Before(iv.Start) {
			t.Fatalf("intervals not ascending at %d", i)
		}
	}
}

func TestExpand_DayBoundaryUsesClinicZone(t *testing.T) {
	loc := mustLoc(t, "America/Argentina/Buenos_Aires")

	// 02:00Z del 11 sigue siendo el 10 a las 23:00 en Buenos Aires
	req := Request{
		SubjectID:       "A1",
		Start:           time.Date(2024, 6, 11, 2, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 6, 12, 3, 0, 0, 0, time.UTC),
		SplitAcrossDays: true,
	}

	got := Expand(req, DefaultWorkingHours(loc))
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got))
	}
	if want := time.Date(2024, 6, 10, 9, 0, 0, 0, loc); !got[0].Start.Equal(want) {
		t.Fatalf("expected first day in clinic zone %s, got %s", want, got[0].Start)
	}
}

func TestExpand_CustomWindow(t *testing.T) {
	wh, err := ParseWorkingHours(time.UTC, "08:30", "12:15")
	if err != nil {
		t.Fatalf("parse hours: %v", err)
	}

	req := Request{
		SubjectID:       "A1",
		Start:           time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC),
		SplitAcrossDays: true,
	}
	got := Expand(req, wh)
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got))
	}
	if want := time.Date(2024, 6, 11, 12, 15, 0, 0, time.UTC); !got[1].End.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got[1].End)
	}

	if _, err := ParseWorkingHours(time.UTC, "25:00", "12:00"); err == nil {
		t.Fatalf("expected error for invalid open clock")
	}
}

func TestParseWorkingHours_RejectsInvertedWindow(t *testing.T) {
	for _, tc := range []struct{ open, close string }{
		{"17:00", "09:00"},
		{"09:00", "09:00"},
		{"12:30", "12:15"},
	} {
		if _, err := ParseWorkingHours(time.UTC, tc.open, tc.close); !errors.Is(err, ErrInvalidWorkingHours) {
			t.Fatalf("%s-%s: expected ErrInvalidWorkingHours, got %v", tc.open, tc.close, err)
		}
	}
}

func TestExpand_IsPure(t *testing.T) {
	req := Request{
		SubjectID:       "A1",
		Start:           time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC),
		SplitAcrossDays: true,
	}
	wh := DefaultWorkingHours(time.UTC)

	a := Expand(req, wh)
	b := Expand(req, wh)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical output on repeated calls")
	}
}
