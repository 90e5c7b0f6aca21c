package commit

import (
	"context"
	"fmt"
	"sync"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

type fakeBookings struct {
	mu       sync.Mutex
	bookings []domain.Booking
	created  []domain.Booking
	failOn   string
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && f.failOn == b.ServiceID {
		return nil, fmt.Errorf("insert failed")
	}
	f.bookings = append(f.bookings, *b)
	f.created = append(f.created, *b)
	return b, nil
}

func (f *fakeBookings) GetWorkerDay(_ context.Context, filter domain.WorkerDayFilter) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID == filter.BusinessID && b.AssignedTo(filter.WorkerID) && b.DateKey == filter.DateKey &&
			(filter.IncludeCancelled || b.IsConfirmed()) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) CancelMany(_ context.Context, businessID string, ids []string, reason *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.bookings {
		for _, id := range ids {
			if f.bookings[i].ID == id && f.bookings[i].BusinessID == businessID && f.bookings[i].IsConfirmed() {
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

type fakeWorkers struct {
	workers []domain.WorkerSchedule
}

func (f *fakeWorkers) ListByBusiness(context.Context, string) ([]domain.WorkerSchedule, error) {
	return f.workers, nil
}

// fakeTx выполняет функцию без транзакции; ошибка функции "откатывает" созданные брони
type fakeTx struct {
	repo  *fakeBookings
	calls int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.repo.mu.Lock()
	before := append([]domain.Booking(nil), f.repo.bookings...)
	f.repo.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.repo.mu.Lock()
		f.repo.bookings = before
		f.repo.created = nil
		f.repo.mu.Unlock()
		return err
	}
	return nil
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
