package reschedule_booking

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// DefaultReason причина отмены старых фаз, если клиент ее не указал
const DefaultReason = "rescheduled"

// Settings значения по умолчанию из конфигурации
type Settings struct {
	DefaultGranularity int
	DefaultTimezone    string
	MaxAdvanceDays     int // 0 - без ограничения
}

// Request модель запроса на перенос бронирования
type Request struct {
	BusinessID string
	BookingID  string           // любая из фаз переносимой услуги
	Date       time.Time        // новая дата
	StartTime  types.TimeString // новое время начала основной фазы
	WorkerID   *string          // новый мастер; nil - прежний мастер
	Reason     *string          // причина отмены старых фаз
}

// Response модель ответа с результатом переноса
type Response struct {
	CancelledIDs []string        // отмененные фазы
	Booking      domain.Booking  // новая основная фаза
	FollowUp     *domain.Booking // новая повторная фаза, если есть
}
