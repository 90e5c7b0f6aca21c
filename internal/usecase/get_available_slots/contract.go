package get_available_slots

import (
	"context"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBusinessDay получает подтвержденные бронирования всех мастеров салона за день
	GetBusinessDay(ctx context.Context, businessID, dateKey string) ([]domain.Booking, error)
}

// BusinessRepository интерфейс репозитория расписания салона
type BusinessRepository interface {
	GetSchedule(ctx context.Context, businessID string) (*domain.BusinessSchedule, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, businessID, serviceID string) (*domain.ServiceDefinition, error)
}

// WorkerRepository интерфейс репозитория мастеров
type WorkerRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.WorkerSchedule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
