package scheduling

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// SlotsEvent вычислен список слотов
type SlotsEvent struct {
	WorkerID        string
	DateKey         string
	DurationMinutes int
	Candidates      int // сгенерировано до фильтрации
	Available       int // осталось после фильтрации
}

// ConflictEvent найдено пересечение с существующей бронью
type ConflictEvent struct {
	WorkerID  string
	DateKey   string
	BookingID string
	Start     time.Time
	End       time.Time
}

// ChainEvent визит собран и проверен
type ChainEvent struct {
	Services int
	Workers  int
	StartAt  time.Time
	EndAt    time.Time
}

// Observer точки наблюдения движка. Реализация передается вызывающим кодом.
type Observer interface {
	SlotsComputed(e SlotsEvent)
	ConflictFound(e ConflictEvent)
	ChainValidated(e ChainEvent)
}

// NopObserver ничего не делает
type NopObserver struct{}

func (NopObserver) SlotsComputed(SlotsEvent) {}
func (NopObserver) ConflictFound(ConflictEvent) {}
func (NopObserver) ChainValidated(ChainEvent) {}

// Engine движок расписания. Не хранит состояния кроме наблюдателя и безопасен для конкурентного использования,
// если безопасен сам наблюдатель.
type Engine struct {
	observer Observer
}

// NewEngine создает движок; nil-наблюдатель заменяется на NopObserver
func NewEngine(observer Observer) *Engine {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{observer: observer}
}

// CheckConflict то же, что HasConflict, но сообщает наблюдателю о найденном пересечении
func (e *Engine) CheckConflict(start, end time.Time, bookings []domain.Booking, scope ConflictScope) ConflictResult {
	res := HasConflict(start, end, bookings, scope)
	if res.Conflict {
		e.observer.ConflictFound(ConflictEvent{
			WorkerID:  scope.WorkerID,
			DateKey:   scope.DateKey,
			BookingID: res.Booking.ID,
			Start:     res.Start,
			End:       res.End,
		})
	}
	return res
}
