package create_booking

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// Settings значения по умолчанию из конфигурации
type Settings struct {
	DefaultGranularity int
	DefaultTimezone    string
	MaxAdvanceDays     int // 0 - без ограничения
}

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID  string           // ID салона
	ServiceID   string           // ID услуги
	WorkerID    *string          // ID мастера; nil - без назначения
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента (опционально)
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  domain.Booking  // основная фаза
	FollowUp *domain.Booking // повторная фаза, если у услуги она есть
}
