package reschedule_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	bookingRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/booking"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

type fakeBookings struct {
	bookings []domain.Booking
	// onCancel вызывается перед отменой, имитирует параллельный запрос
	onCancel func(f *fakeBookings)
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.bookings = append(f.bookings, *b)
	return b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, businessID, id string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id && b.BusinessID == businessID {
			found := b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) GetLinked(_ context.Context, target *domain.Booking) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.IsLinkedTo(target) {
			out = append(out, b)
		}
	}
	return out, nil
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

func (f *fakeBookings) CancelMany(_ context.Context, _ string, ids []string, reason *string) (int64, error) {
	if f.onCancel != nil {
		f.onCancel(f)
	}
	var n int64
	for i := range f.bookings {
		for _, id := range ids {
			if f.bookings[i].ID == id && f.bookings[i].IsConfirmed() {
				f.bookings[i].Status = domain.StatusCancelled
				f.bookings[i].CancellationReason = reason
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeBookings) byID(id string) domain.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return domain.Booking{}
}

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

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("new-%d", s.n)
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
