package get_available_slots

import (
	"context"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

type fakeBookings struct {
	bookings []domain.Booking
}

func (f *fakeBookings) GetBusinessDay(_ context.Context, businessID, dateKey string) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID == businessID && b.DateKey == dateKey && b.IsConfirmed() {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBusiness struct {
	schedules map[string]domain.BusinessSchedule
}

func (f *fakeBusiness) GetSchedule(_ context.Context, businessID string) (*domain.BusinessSchedule, error) {
	s, ok := f.schedules[businessID]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &s, nil
}

type fakeCatalog struct {
	services map[string]*domain.ServiceDefinition
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID string) (*domain.ServiceDefinition, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeWorkers struct {
	workers []domain.WorkerSchedule
}

func (f *fakeWorkers) ListByBusiness(context.Context, string) ([]domain.WorkerSchedule, error) {
	return f.workers, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func everyDay(start, end string) domain.WeeklyHours {
	hours := make(domain.WeeklyHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = domain.DayHours{Enabled: true, Start: types.TimeString(start), End: types.TimeString(end)}
	}
	return hours
}

func confirmed(id, workerID, dateKey, start, end string) domain.Booking {
	day, _ := time.Parse(domain.DateFormat, dateKey)
	from, _ := types.TimeString(start).OnDate(day)
	to, _ := types.TimeString(end).OnDate(day)
	return domain.Booking{
		ID:         id,
		BusinessID: "salon-1",
		WorkerID:   ptr.Ptr(workerID),
		DateKey:    dateKey,
		StartAt:    from,
		EndAt:      to,
		Status:     domain.StatusConfirmed,
		Phase:      domain.PhaseMain,
	}
}
