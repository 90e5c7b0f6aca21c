package book_visit

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

// Item услуга визита в порядке выполнения
type Item struct {
	ServiceID string
	WorkerID  *string // nil - без назначения
}

// Request модель запроса на запись визита из нескольких услуг
type Request struct {
	BusinessID  string
	Date        time.Time
	StartTime   types.TimeString // начало первой услуги
	Items       []Item
	ClientName  string
	ClientPhone string
	Notes       *string
}

// Response модель ответа с сохраненным визитом
type Response struct {
	VisitID  string
	StartAt  time.Time
	EndAt    time.Time        // конец последнего блока, включая повторную фазу
	Bookings []domain.Booking // фаза 1 каждой услуги, за ней ее фаза 2
}
