package observer

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/logger"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
)

func TestObserver_FedByEngine(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&buf, "debug")
	require.NoError(t, err)
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	engine := scheduling.NewEngine(New(log, m))
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []domain.Booking{{
		ID:       "b1",
		WorkerID: ptr.Ptr("w1"),
		DateKey:  "2026-03-10",
		StartAt:  day.Add(10 * time.Hour),
		EndAt:    day.Add(10*time.Hour + 30*time.Minute),
		Status:   domain.StatusConfirmed,
	}}

	_, err = engine.ListAvailableSlots(scheduling.SlotQuery{
		Date:            day,
		Granularity:     30,
		Business:        &scheduling.Window{StartMin: 600, EndMin: 660},
		WorkerID:        "w1",
		DurationMinutes: 30,
		Bookings:        existing,
	})
	require.NoError(t, err)

	_, err = engine.BuildChain(scheduling.ChainRequest{
		Items:      []scheduling.ChainItem{{ServiceID: "cut", DurationMinutes: 30, WorkerID: ptr.Ptr("w1")}},
		VisitStart: day.Add(10 * time.Hour),
		Workers:    scheduling.WorkersByID([]domain.WorkerSchedule{{ID: "w1", Active: true}}),
		Bookings:   existing,
	})
	require.ErrorIs(t, err, scheduling.ErrWorkerConflict)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SlotsComputed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ConflictsFound))
	assert.Contains(t, buf.String(), "candidates=2 available=1")
	assert.Contains(t, buf.String(), "booking=b1 busy 10:00-10:30")
}

func TestObserver_WithoutMetrics(t *testing.T) {
	o := New(logger.Nop(), nil)
	assert.NotPanics(t, func() {
		o.SlotsComputed(scheduling.SlotsEvent{})
		o.ConflictFound(scheduling.ConflictEvent{})
		o.ChainValidated(scheduling.ChainEvent{Services: 2, Workers: 1})
	})
}
