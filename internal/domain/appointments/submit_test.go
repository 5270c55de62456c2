package appointments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"vet-clinic-scheduling/internal/platform/logger"
)

type fakeCreator struct {
	calls  []NewAppointment
	failAt int // 1-based; 0 = nunca
	ctxErr []error
}

func (f *fakeCreator) Create(ctx context.Context, in NewAppointment) (Appointment, error) {
	f.calls = append(f.calls, in)
	f.ctxErr = append(f.ctxErr, ctx.Err())
	if f.failAt == len(f.calls) {
		return Appointment{}, errors.New("backend: 500 slot unavailable")
	}
	return Appointment{
		ID:        fmt.Sprintf("apt-%d", len(f.calls)),
		SubjectID: in.SubjectID,
		Start:     in.Start,
		End:       in.End,
		Notes:     in.Notes,
		Kind:      in.Kind,
		Status:    in.Status,
	}, nil
}

type fakeNotifier struct {
	subjects []string
	err      error
}

func (n *fakeNotifier) AppointmentsChanged(_ context.Context, subjectID string) error {
	n.subjects = append(n.subjects, subjectID)
	return n.err
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSubmitter(c Creator, opts ...SubmitterOption) *Submitter {
	opts = append([]SubmitterOption{WithClock(func() time.Time { return testNow })}, opts...)
	return NewSubmitter(c, DefaultWorkingHours(time.UTC), opts...)
}

func threeDayRequest() Request {
	return Request{
		SubjectID:       "A1",
		Start:           time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
		End:             time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
		SplitAcrossDays: true,
		Notes:           "  control post operatorio ",
		Kind:            KindSurgery,
	}
}

func TestSubmit_Completed(t *testing.T) {
	creator := &fakeCreator{}
	notifier := &fakeNotifier{}
	s := newTestSubmitter(creator, WithNotifier(notifier))

	out, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != StateCompleted || out.Attempted != 3 || out.Succeeded != 3 || out.FailedIndex != -1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Err() != nil {
		t.Fatalf("expected nil Err on completed, got %v", out.Err())
	}
	if !out.RefreshRequired {
		t.Fatalf("expected refresh signal")
	}
	if len(notifier.subjects) != 1 || notifier.subjects[0] != "A1" {
		t.Fatalf("expected one notification for A1, got %v", notifier.subjects)
	}

	for i, c := range creator.calls {
		if c.Status != StatusPending || c.Kind != KindSurgery || c.Notes != "control post operatorio" || c.SubjectID != "A1" {
			t.Fatalf("call %d: unexpected payload %+v", i, c)
		}
		if i > 0 && !creator.calls[i-1].Start.Before(c.Start) {
			t.Fatalf("calls not in ascending order at %d", i)
		}
	}
}

func TestSubmit_StopsAtFirstFailure(t *testing.T) {
	creator := &fakeCreator{failAt: 2}
	s := newTestSubmitter(creator)

	out, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if out.State != StatePartiallyFailed {
		t.Fatalf("expected partially_failed, got %s", out.State)
	}
	if out.Succeeded != 1 || out.Attempted != 3 || out.FailedIndex != 1 {
		t.Fatalf("expected succeeded=1 attempted=3 failed_index=1, got %+v", out)
	}
	if len(creator.calls) != 2 {
		t.Fatalf("third interval must never be submitted, got %d calls", len(creator.calls))
	}
	if len(out.Created) != 1 || out.Created[0].ID != "apt-1" {
		t.Fatalf("expected first interval kept, got %+v", out.Created)
	}
	if !out.RefreshRequired {
		t.Fatalf("expected refresh signal after partial failure")
	}

	var perr *PersistenceError
	if !errors.As(out.Err(), &perr) {
		t.Fatalf("expected *PersistenceError, got %v", out.Err())
	}
	if perr.Succeeded != 1 || perr.Attempted != 3 || perr.Message != "backend: 500 slot unavailable" {
		t.Fatalf("unexpected persistence error: %+v", perr)
	}
}

func TestSubmit_RejectedMakesNoCalls(t *testing.T) {
	creator := &fakeCreator{}
	notifier := &fakeNotifier{}
	s := newTestSubmitter(creator, WithNotifier(notifier))

	past := Request{
		SubjectID: "A1",
		Start:     testNow.Add(-time.Hour),
		End:       testNow.Add(time.Hour),
	}
	out, err := s.Submit(context.Background(), past, ViewDay)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != StateRejected || out.Reason != ReasonPastDate {
		t.Fatalf("expected rejected past_date, got %+v", out)
	}
	if len(creator.calls) != 0 || len(notifier.subjects) != 0 {
		t.Fatalf("rejected request must not reach collaborators")
	}
	if out.RefreshRequired {
		t.Fatalf("rejection must not ask for refresh")
	}

	// misma solicitud con vista mensual: el día de hoy está permitido
	out, _ = s.Submit(context.Background(), past, ViewMonth)
	if out.State != StateCompleted || len(creator.calls) != 1 {
		t.Fatalf("expected month view to accept same-day start, got %+v", out)
	}
}

func TestSubmit_CancelledBeforeSubmitting(t *testing.T) {
	creator := &fakeCreator{}
	s := newTestSubmitter(creator)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := s.Submit(ctx, threeDayRequest(), ViewDay)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.State != StateIdle || len(creator.calls) != 0 {
		t.Fatalf("expected idle without calls, got %+v calls=%d", out, len(creator.calls))
	}
}

type cancellingCreator struct {
	fakeCreator
	cancel context.CancelFunc
}

func (c *cancellingCreator) Create(ctx context.Context, in NewAppointment) (Appointment, error) {
	a, err := c.fakeCreator.Create(ctx, in)
	c.cancel()
	return a, err
}

func TestSubmit_CancelDuringSubmittingDoesNotAbort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	creator := &cancellingCreator{cancel: cancel}
	s := newTestSubmitter(creator)

	out, err := s.Submit(ctx, threeDayRequest(), ViewDay)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != StateCompleted || len(creator.calls) != 3 {
		t.Fatalf("expected all 3 intervals despite cancellation, got %+v", out)
	}
	for i, e := range creator.ctxErr {
		if e != nil {
			t.Fatalf("call %d saw cancelled context: %v", i, e)
		}
	}
}

func TestSubmit_NotifierErrorDoesNotChangeOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	notifier := &fakeNotifier{err: errors.New("broker down")}
	s := newTestSubmitter(&fakeCreator{}, WithNotifier(notifier), WithLogger(logger.FromZap(zap.New(core))))

	out, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if err != nil || out.State != StateCompleted {
		t.Fatalf("expected completed, got %+v err=%v", out, err)
	}
	if logs.FilterMessage("refresh notification failed").Len() != 1 {
		t.Fatalf("expected warning about notification failure")
	}

	var states []string
	for _, e := range logs.FilterMessage("submission state").All() {
		states = append(states, fmt.Sprint(e.ContextMap()["to"]))
	}
	want := []string{"validating", "expanding", "submitting", "completed"}
	if fmt.Sprint(states) != fmt.Sprint(want) {
		t.Fatalf("expected transitions %v, got %v", want, states)
	}
}

func TestSubmit_DefaultsKindToNormal(t *testing.T) {
	creator := &fakeCreator{}
	s := newTestSubmitter(creator)

	req := Request{SubjectID: "A1", Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}
	if _, err := s.Submit(context.Background(), req, ViewWeek); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(creator.calls) != 1 || creator.calls[0].Kind != KindNormal {
		t.Fatalf("expected kind normal, got %+v", creator.calls)
	}
	if !creator.calls[0].Start.Equal(req.Start) || !creator.calls[0].End.Equal(req.End) {
		t.Fatalf("single-day request must keep original times")
	}
}

func TestPreview(t *testing.T) {
	s := newTestSubmitter(&fakeCreator{})

	res, intervals := s.Preview(threeDayRequest(), ViewDay)
	if !res.OK || len(intervals) != 3 {
		t.Fatalf("expected 3 intervals, got %v %d", res, len(intervals))
	}

	bad := threeDayRequest()
	bad.End = bad.Start
	res, intervals = s.Preview(bad, ViewDay)
	if res.OK || res.Reason != ReasonInvertedRange || intervals != nil {
		t.Fatalf("expected inverted_range without intervals, got %v %v", res, intervals)
	}
}

type fakeSubjects struct {
	known map[string]bool
	err   error
	calls int
}

func (f *fakeSubjects) Exists(_ context.Context, id string) (bool, error) {
	f.calls++
	return f.known[id], f.err
}

func TestSubmit_UnknownSubjectCreatesNothing(t *testing.T) {
	creator := &fakeCreator{}
	subjects := &fakeSubjects{known: map[string]bool{}}
	s := newTestSubmitter(creator, WithSubjects(subjects))

	out, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if !errors.Is(err, ErrSubjectUnknown) {
		t.Fatalf("expected ErrSubjectUnknown, got %v", err)
	}
	if out.State != StateIdle || len(creator.calls) != 0 {
		t.Fatalf("expected idle without calls, got %+v calls=%d", out, len(creator.calls))
	}
}

func TestSubmit_RejectionWinsOverSubjectLookup(t *testing.T) {
	subjects := &fakeSubjects{known: map[string]bool{}}
	s := newTestSubmitter(&fakeCreator{}, WithSubjects(subjects))

	req := threeDayRequest()
	req.End = req.Start.Add(-time.Hour)
	out, err := s.Submit(context.Background(), req, ViewDay)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.State != StateRejected || out.Reason != ReasonInvertedRange {
		t.Fatalf("expected inverted_range rejection, got %+v", out)
	}
	if subjects.calls != 0 {
		t.Fatalf("subject lookup must not run for rejected requests, got %d calls", subjects.calls)
	}
}

func TestSubmit_SubjectLookupErrorIsReturned(t *testing.T) {
	creator := &fakeCreator{}
	lookupErr := errors.New("backend down")
	s := newTestSubmitter(creator, WithSubjects(&fakeSubjects{err: lookupErr}))

	_, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
	if len(creator.calls) != 0 {
		t.Fatalf("expected no creates, got %d", len(creator.calls))
	}
}

func TestSubmit_KnownSubjectProceeds(t *testing.T) {
	creator := &fakeCreator{}
	s := newTestSubmitter(creator, WithSubjects(&fakeSubjects{known: map[string]bool{"A1": true}}))

	out, err := s.Submit(context.Background(), threeDayRequest(), ViewDay)
	if err != nil || out.State != StateCompleted || len(creator.calls) != 3 {
		t.Fatalf("expected completed with 3 creates, got %+v err=%v calls=%d", out, err, len(creator.calls))
	}
}
