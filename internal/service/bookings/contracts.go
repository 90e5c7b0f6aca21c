package bookings

import (
	"context"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, businessID, id string) (*domain.Booking, error)
	GetWorkerDay(ctx context.Context, filter domain.WorkerDayFilter) ([]domain.Booking, error)
	GetLinked(ctx context.Context, booking *domain.Booking) ([]domain.Booking, error)
	CancelMany(ctx context.Context, businessID string, ids []string, reason *string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
