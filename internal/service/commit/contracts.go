package commit

import (
	"context"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/daylock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWorkerDay(ctx context.Context, filter domain.WorkerDayFilter) ([]domain.Booking, error)
	CancelMany(ctx context.Context, businessID string, ids []string, reason *string) (int64, error)
}

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.WorkerSchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DayLocker блокировка дней мастеров на время записи
type DayLocker interface {
	Acquire(ctx context.Context, keys ...daylock.Key) (daylock.ReleaseFunc, error)
}

// IDGenerator генератор идентификаторов бронирований и визитов
type IDGenerator interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
