package create_booking

import (
	"context"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
)

// BusinessRepository интерфейс репозитория расписания салона
type BusinessRepository interface {
	GetSchedule(ctx context.Context, businessID string) (*domain.BusinessSchedule, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, businessID, serviceID string) (*domain.ServiceDefinition, error)
}

// Committer перепроверка и сохранение визита в одной транзакции
type Committer interface {
	Commit(ctx context.Context, req *commit.Request) (*commit.Result, error)
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
