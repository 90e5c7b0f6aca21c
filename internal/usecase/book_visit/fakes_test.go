package book_visit

import (
	"context"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

type fakeBusiness struct {
	schedule domain.BusinessSchedule
}

func (f *fakeBusiness) GetSchedule(_ context.Context, businessID string) (*domain.BusinessSchedule, error) {
	if f.schedule.BusinessID != businessID {
		return nil, businessRepo.ErrBusinessNotFound
	}
	s := f.schedule
	return &s, nil
}

type fakeCatalog struct {
	services map[string]*domain.ServiceDefinition
	requests [][]string
}

func (f *fakeCatalog) GetServices(_ context.Context, _ string, ids []string) (map[string]*domain.ServiceDefinition, error) {
	f.requests = append(f.requests, ids)
	out := make(map[string]*domain.ServiceDefinition, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings []domain.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.bookings = append(f.bookings, *b)
	return b, nil
}

func (f *fakeBookings) GetWorkerDay(_ context.Context, filter domain.WorkerDayFilter) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.AssignedTo(filter.WorkerID) && b.DateKey == filter.DateKey && b.IsConfirmed() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) CancelMany(context.Context, string, []string, *string) (int64, error) {
	return 0, nil
}

type fakeWorkers struct {
	workers []domain.WorkerSchedule
}

func (f *fakeWorkers) ListByBusiness(context.Context, string) ([]domain.WorkerSchedule, error) {
	return f.workers, nil
}

// passTx выполняет функцию без транзакции; при ошибке возвращает брони к исходному состоянию
type passTx struct {
	repo *fakeBookings
}

func (p *passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	before := append([]domain.Booking(nil), p.repo.bookings...)
	if err := fn(ctx); err != nil {
		p.repo.bookings = before
		return err
	}
	return nil
}

type seqIDs struct {
	prefix string
	n      int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
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
