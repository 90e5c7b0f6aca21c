package commit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/daylock"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) // вторник

func at(hhmm string) time.Time {
	t, err := types.TimeString(hhmm).OnDate(day)
	if err != nil {
		panic(err)
	}
	return t
}

func schedule() *domain.BusinessSchedule {
	hours := make(domain.WeeklyHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = domain.DayHours{Enabled: true, Start: "09:00", End: "13:00"}
	}
	return &domain.BusinessSchedule{BusinessID: "biz", SlotGranularity: 15, WeeklyHours: hours}
}

func colorItem(worker string) scheduling.ChainItem {
	return scheduling.ChainItem{
		ServiceID:       "color",
		ServiceName:     "Color",
		DurationMinutes: 30,
		WorkerID:        ptr.Ptr(worker),
		FollowUp:        &domain.FollowUp{Name: "Rinse", DurationMinutes: 45, WaitMinutes: 60},
	}
}

func existing(id, worker, start, end string) domain.Booking {
	return domain.Booking{
		ID:         id,
		BusinessID: "biz",
		WorkerID:   ptr.Ptr(worker),
		ServiceID:  "cut",
		DateKey:    "2026-03-10",
		StartAt:    at(start),
		EndAt:      at(end),
		Status:     domain.StatusConfirmed,
		Phase:      domain.PhaseMain,
	}
}

type fixture struct {
	svc     *Service
	repo    *fakeBookings
	tx      *fakeTx
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, locker DayLocker, bookings ...domain.Booking) *fixture {
	t.Helper()
	repo := &fakeBookings{bookings: bookings}
	tx := &fakeTx{repo: repo}
	workers := &fakeWorkers{workers: []domain.WorkerSchedule{
		{ID: "w1", BusinessID: "biz", Active: true},
		{ID: "w2", BusinessID: "biz", Active: true, Services: map[string]struct{}{"cut": {}}},
		{ID: "w3", BusinessID: "biz", Active: true, Availability: []domain.WorkerDay{{
			Weekday: time.Tuesday, Open: ptr.Ptr(types.TimeString("09:00")), Close: ptr.Ptr(types.TimeString("11:00")),
		}}},
	}}
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	svc := NewService(repo, workers, tx, locker, scheduling.NewEngine(nil), m, nopLogger{}).
		WithIDGenerator(&seqIDs{})
	return &fixture{svc: svc, repo: repo, tx: tx, metrics: m}
}

func TestCommit_PersistsBothPhases(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w1")},
		VisitStart: at("10:00"),
		Client:     Client{Name: "Dana", Phone: "+972500000000"},
	})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)

	phase1, phase2 := res.Bookings[0], res.Bookings[1]
	assert.Equal(t, domain.PhaseMain, phase1.Phase)
	assert.Equal(t, at("10:00"), phase1.StartAt)
	assert.Equal(t, at("10:30"), phase1.EndAt)
	assert.Nil(t, phase1.ParentBookingID)

	assert.Equal(t, domain.PhaseFollowUp, phase2.Phase)
	assert.Equal(t, "Rinse", phase2.ServiceName)
	assert.Equal(t, at("11:30"), phase2.StartAt)
	assert.Equal(t, at("12:15"), phase2.EndAt)
	require.NotNil(t, phase2.ParentBookingID)
	assert.Equal(t, phase1.ID, *phase2.ParentBookingID)
	assert.Equal(t, "2026-03-10", phase2.DateKey)
	assert.Equal(t, "Dana", phase2.ClientName)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("single")))
}

func TestCommit_ConflictCreatesNothing(t *testing.T) {
	tests := []struct {
		name     string
		existing domain.Booking
	}{
		{name: "main phase", existing: existing("x", "w1", "10:15", "10:45")},
		{name: "follow-up phase", existing: existing("x", "w1", "12:00", "12:30")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, tt.existing)

			_, err := f.svc.Commit(context.Background(), &Request{
				Schedule:   schedule(),
				Items:      []scheduling.ChainItem{colorItem("w1")},
				VisitStart: at("10:00"),
			})
			require.ErrorIs(t, err, scheduling.ErrWorkerConflict)
			assert.Empty(t, f.repo.created)
			assert.Len(t, f.repo.bookings, 1)
		})
	}
}

func TestCommit_WaitGapCanHoldAnotherBooking(t *testing.T) {
	f := newFixture(t, nil, existing("x", "w1", "10:30", "11:30"))

	res, err := f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w1")},
		VisitStart: at("10:00"),
	})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
}

func TestCommit_IncompatibleWorker(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w2")},
		VisitStart: at("10:00"),
	})
	assert.ErrorIs(t, err, scheduling.ErrIncompatibleWorkerAssignment)
	assert.Empty(t, f.repo.created)
}

func TestCommit_OutsideWorkingHours(t *testing.T) {
	tests := []struct {
		name   string
		worker string
		start  string
		sched  func() *domain.BusinessSchedule
	}{
		{name: "main phase past closing", worker: "w1", start: "12:45", sched: schedule},
		{name: "follow-up past closing", worker: "w1", start: "11:30", sched: schedule},
		{name: "before opening", worker: "w1", start: "08:45", sched: schedule},
		{name: "follow-up outside worker window", worker: "w3", start: "09:30", sched: schedule},
		{
			name:   "closed date",
			worker: "w1",
			start:  "10:00",
			sched: func() *domain.BusinessSchedule {
				s := schedule()
				s.ClosedDates = []string{"2026-03-10"}
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			_, err := f.svc.Commit(context.Background(), &Request{
				Schedule:   tt.sched(),
				Items:      []scheduling.ChainItem{colorItem(tt.worker)},
				VisitStart: at(tt.start),
			})
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
			assert.Empty(t, f.repo.created)
		})
	}
}

func TestCommit_ReplaceExcludesAndCancelsOldBookings(t *testing.T) {
	old1 := existing("old-1", "w1", "10:00", "10:30")
	old2 := existing("old-2", "w1", "11:30", "12:15")
	old2.Phase = domain.PhaseFollowUp
	old2.ParentBookingID = ptr.Ptr("old-1")
	f := newFixture(t, nil, old1, old2)

	res, err := f.svc.Commit(context.Background(), &Request{
		Schedule:           schedule(),
		Items:              []scheduling.ChainItem{colorItem("w1")},
		VisitStart:         at("10:15"),
		Replace:            []domain.Booking{old1, old2},
		CancellationReason: ptr.Ptr("rescheduled"),
	})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 2)

	assert.Equal(t, domain.StatusCancelled, f.repo.byID("old-1").Status)
	assert.Equal(t, domain.StatusCancelled, f.repo.byID("old-2").Status)
	assert.Equal(t, "rescheduled", *f.repo.byID("old-2").CancellationReason)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("reschedule")))
}

func TestCommit_ReplaceAlreadyCancelledCreatesNothing(t *testing.T) {
	old := existing("old-1", "w1", "10:00", "10:30")
	cancelled := old
	cancelled.Status = domain.StatusCancelled
	f := newFixture(t, nil, cancelled)

	_, err := f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{{ServiceID: "cut", ServiceName: "Cut", DurationMinutes: 30, WorkerID: ptr.Ptr("w1")}},
		VisitStart: at("11:00"),
		Replace:    []domain.Booking{old},
	})
	assert.ErrorIs(t, err, ErrReplacedChanged)
	assert.Empty(t, f.repo.created)
	require.Len(t, f.repo.bookings, 1)
	assert.Equal(t, domain.StatusCancelled, f.repo.byID("old-1").Status)
}

func TestCommit_ReplacePartiallyCancelledRollsBack(t *testing.T) {
	old1 := existing("old-1", "w1", "10:00", "10:30")
	old2 := existing("old-2", "w1", "11:30", "12:15")
	old2.Phase = domain.PhaseFollowUp
	old2.ParentBookingID = ptr.Ptr("old-1")
	gone := old2
	gone.Status = domain.StatusCancelled
	f := newFixture(t, nil, old1, gone)

	_, err := f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w1")},
		VisitStart: at("10:15"),
		Replace:    []domain.Booking{old1, old2},
	})
	assert.ErrorIs(t, err, ErrReplacedChanged)
	assert.Empty(t, f.repo.created)
	assert.Equal(t, domain.StatusConfirmed, f.repo.byID("old-1").Status)
}

func TestCommit_MultiServiceVisit(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.svc.Commit(context.Background(), &Request{
		Schedule: schedule(),
		Items: []scheduling.ChainItem{
			colorItem("w1"),
			{ServiceID: "cut", ServiceName: "Cut", DurationMinutes: 30, WorkerID: ptr.Ptr("w2")},
		},
		VisitStart: at("09:00"),
		VisitID:    ptr.Ptr("visit-1"),
	})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 3)

	cut := res.Bookings[2]
	assert.Equal(t, "cut", cut.ServiceID)
	assert.Equal(t, at("11:15"), cut.StartAt)
	for _, b := range res.Bookings {
		require.NotNil(t, b.VisitID)
		assert.Equal(t, "visit-1", *b.VisitID)
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("visit")))
}

func TestCommit_DayLocked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	locker := daylock.New(client, 10*time.Second)

	hold, err := locker.Acquire(context.Background(), daylock.Key{BusinessID: "biz", WorkerID: "w1", DateKey: "2026-03-10"})
	require.NoError(t, err)

	f := newFixture(t, locker)
	_, err = f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w1")},
		VisitStart: at("10:00"),
	})
	assert.ErrorIs(t, err, ErrDayLocked)
	assert.Zero(t, f.tx.calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.DayLockContention))

	require.NoError(t, hold(context.Background()))

	_, err = f.svc.Commit(context.Background(), &Request{
		Schedule:   schedule(),
		Items:      []scheduling.ChainItem{colorItem("w1")},
		VisitStart: at("10:00"),
	})
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 0, "lock released after commit")
}

func TestCommit_PersistFailureRollsBack(t *testing.T) {
	f := newFixture(t, nil)
	f.repo.failOn = "cut"

	_, err := f.svc.Commit(context.Background(), &Request{
		Schedule: schedule(),
		Items: []scheduling.ChainItem{
			colorItem("w1"),
			{ServiceID: "cut", ServiceName: "Cut", DurationMinutes: 30, WorkerID: ptr.Ptr("w2")},
		},
		VisitStart: at("09:00"),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.repo.bookings)
}
