package book_visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
)

var visitDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func clock(hhmm string) time.Time {
	t, err := time.Parse(domain.TimeFormat, hhmm)
	if err != nil {
		panic(err)
	}
	return visitDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

type fixture struct {
	bookings *fakeBookings
	catalog  *fakeCatalog
	uc       *UseCase
}

func newFixture(existing ...domain.Booking) *fixture {
	bookings := &fakeBookings{bookings: existing}
	catalog := &fakeCatalog{services: map[string]*domain.ServiceDefinition{
		"color": {
			ID: "color", Name: "Color", DurationMinutes: 30,
			FollowUp: &domain.FollowUp{Name: "Rinse", DurationMinutes: 45, WaitMinutes: 60},
		},
		"cut":   {ID: "cut", Name: "Cut", DurationMinutes: 40},
		"nails": {ID: "nails", Name: "Nails", DurationMinutes: 20},
	}}
	workers := &fakeWorkers{workers: []domain.WorkerSchedule{
		{ID: "w1", Active: true, Services: map[string]struct{}{"color": {}, "cut": {}}},
		{ID: "w2", Active: true},
		{ID: "w4", Active: true, Services: map[string]struct{}{"nails": {}}},
	}}

	committer := commit.NewService(bookings, workers, &passTx{repo: bookings}, nil,
		scheduling.NewEngine(nil), nil, nopLogger{}).WithIDGenerator(&seqIDs{prefix: "b"})

	uc := NewUseCase(&fakeBusiness{schedule: domain.BusinessSchedule{
		BusinessID:  "salon-1",
		WeeklyHours: everyDay("09:00", "18:00"),
	}}, catalog, committer, Settings{
		DefaultGranularity: 15,
		DefaultTimezone:    "UTC",
		MaxAdvanceDays:     30,
	}, nopLogger{}).
		WithTimeProvider(fixedTime{now: visitDay.Add(-24 * time.Hour)}).
		WithIDGenerator(&seqIDs{prefix: "visit"})

	return &fixture{bookings: bookings, catalog: catalog, uc: uc}
}

func visitRequest(items ...Item) *Request {
	return &Request{
		BusinessID: "salon-1",
		Date:       visitDay,
		StartTime:  "10:00",
		Items:      items,
		ClientName: "Dana",
	}
}

func TestExecute_ColorThenCut(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), visitRequest(
		Item{ServiceID: "color", WorkerID: ptr.Ptr("w1")},
		Item{ServiceID: "cut", WorkerID: ptr.Ptr("w2")},
	))
	require.NoError(t, err)

	assert.Equal(t, "visit-1", resp.VisitID)
	assert.Equal(t, clock("10:00"), resp.StartAt)
	assert.Equal(t, clock("12:55"), resp.EndAt)
	require.Len(t, resp.Bookings, 3)

	color, rinse, cut := resp.Bookings[0], resp.Bookings[1], resp.Bookings[2]

	assert.Equal(t, domain.PhaseMain, color.Phase)
	assert.Equal(t, clock("10:00"), color.StartAt)
	assert.Equal(t, clock("10:30"), color.EndAt)

	assert.Equal(t, domain.PhaseFollowUp, rinse.Phase)
	assert.Equal(t, "Rinse", rinse.ServiceName)
	assert.Equal(t, color.ID, *rinse.ParentBookingID)
	assert.Equal(t, clock("11:30"), rinse.StartAt)
	assert.Equal(t, clock("12:15"), rinse.EndAt)

	assert.Equal(t, "w2", *cut.WorkerID)
	assert.Equal(t, clock("12:15"), cut.StartAt)
	assert.Equal(t, clock("12:55"), cut.EndAt)

	for _, b := range resp.Bookings {
		require.NotNil(t, b.VisitID)
		assert.Equal(t, "visit-1", *b.VisitID)
		assert.Equal(t, "2026-03-10", b.DateKey)
		assert.Equal(t, "Dana", b.ClientName)
	}
	assert.Len(t, f.bookings.bookings, 3)
}

func TestExecute_ServicesLoadedOnce(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), visitRequest(
		Item{ServiceID: "cut", WorkerID: ptr.Ptr("w1")},
		Item{ServiceID: "cut", WorkerID: ptr.Ptr("w2")},
		Item{ServiceID: "nails", WorkerID: ptr.Ptr("w4")},
	))
	require.NoError(t, err)
	require.Len(t, f.catalog.requests, 1)
	assert.Equal(t, []string{"cut", "nails"}, f.catalog.requests[0])
}

func TestExecute_ConflictCreatesNothing(t *testing.T) {
	existing := domain.Booking{
		ID: "x", BusinessID: "salon-1", WorkerID: ptr.Ptr("w2"), DateKey: "2026-03-10",
		StartAt: clock("12:30"), EndAt: clock("13:00"), Status: domain.StatusConfirmed, Phase: domain.PhaseMain,
	}
	f := newFixture(existing)

	resp, err := f.uc.Execute(context.Background(), visitRequest(
		Item{ServiceID: "color", WorkerID: ptr.Ptr("w1")},
		Item{ServiceID: "cut", WorkerID: ptr.Ptr("w2")},
	))
	assert.Nil(t, resp)
	require.ErrorIs(t, err, scheduling.ErrWorkerConflict)

	var conflict *scheduling.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "x", conflict.BookingID)
	assert.Equal(t, "cut", conflict.ServiceID)
	assert.Equal(t, []domain.Booking{existing}, f.bookings.bookings)
}

func TestExecute_IncompatibleWorker(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), visitRequest(
		Item{ServiceID: "cut", WorkerID: ptr.Ptr("w2")},
		Item{ServiceID: "nails", WorkerID: ptr.Ptr("w1")},
	))
	assert.ErrorIs(t, err, scheduling.ErrIncompatibleWorkerAssignment)
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_VisitPastClosingTime(t *testing.T) {
	f := newFixture()

	req := visitRequest(Item{ServiceID: "nails", WorkerID: ptr.Ptr("w4")}, Item{ServiceID: "cut", WorkerID: ptr.Ptr("w2")})
	req.StartTime = "17:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, commit.ErrOutsideWorkingHours)
	assert.Empty(t, f.bookings.bookings)
}

func TestExecute_RejectedBeforeCommit(t *testing.T) {
	tooMany := make([]Item, domain.MaxVisitServices+1)
	for i := range tooMany {
		tooMany[i] = Item{ServiceID: "nails"}
	}

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no items", req: visitRequest(), wantErr: ErrInvalidInput},
		{name: "too many items", req: visitRequest(tooMany...), wantErr: ErrInvalidInput},
		{name: "blank service", req: visitRequest(Item{ServiceID: ""}), wantErr: ErrInvalidInput},
		{name: "blank worker", req: visitRequest(Item{ServiceID: "cut", WorkerID: ptr.Ptr(" ")}), wantErr: ErrInvalidInput},
		{name: "unknown service", req: visitRequest(Item{ServiceID: "cut"}, Item{ServiceID: "perm"}), wantErr: ErrServiceNotFound},
		{
			name:    "unknown business",
			req:     func() *Request { r := visitRequest(Item{ServiceID: "cut"}); r.BusinessID = "other"; return r }(),
			wantErr: ErrBusinessNotFound,
		},
		{
			name:    "past date",
			req:     func() *Request { r := visitRequest(Item{ServiceID: "cut"}); r.Date = visitDay.AddDate(0, 0, -3); return r }(),
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too far ahead",
			req:     func() *Request { r := visitRequest(Item{ServiceID: "cut"}); r.Date = visitDay.AddDate(0, 0, 40); return r }(),
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "malformed start",
			req:     func() *Request { r := visitRequest(Item{ServiceID: "cut"}); r.StartTime = "25:00"; return r }(),
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.bookings)
		})
	}
}
