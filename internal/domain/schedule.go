package domain

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// DayHours часы работы салона в конкретный день недели
type DayHours struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
}

// WeeklyHours часы работы по дням недели (0 = воскресенье ... 6 = суббота)
type WeeklyHours map[time.Weekday]DayHours

// BusinessSchedule конфигурация расписания салона
type BusinessSchedule struct {
	BusinessID      string
	Timezone        string
	SlotGranularity int // минут между соседними стартами слотов
	WeeklyHours     WeeklyHours
	ClosedDates     []string // YYYY-MM-DD
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Location возвращает часовой пояс салона, UTC если пояс не задан или некорректен
func (s *BusinessSchedule) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsClosedOn returns true if the date key is one of the business's closed dates
func (s *BusinessSchedule) IsClosedOn(dateKey string) bool {
	for _, d := range s.ClosedDates {
		if d == dateKey {
			return true
		}
	}
	return false
}

// WorkerDay доступность мастера в день недели. Open/Close = nil означает выходной.
type WorkerDay struct {
	Weekday time.Weekday
	Open    *types.TimeString
	Close   *types.TimeString
}

// IsOff returns true if the entry marks the worker as unavailable that day
func (d WorkerDay) IsOff() bool {
	return d.Open == nil || d.Close == nil
}

// WorkerSchedule мастер салона и его расписание
type WorkerSchedule struct {
	ID         string
	BusinessID string
	Name       string
	Active     bool
	// Services пустой набор означает "умеет все услуги" (совместимость со старыми записями)
	Services     map[string]struct{}
	Availability []WorkerDay
}

// HasAvailabilityConfig returns false for legacy workers without any availability data
func (w *WorkerSchedule) HasAvailabilityConfig() bool {
	return len(w.Availability) > 0
}

// DayEntry возвращает запись доступности для дня недели
func (w *WorkerSchedule) DayEntry(weekday time.Weekday) (WorkerDay, bool) {
	for _, d := range w.Availability {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return WorkerDay{}, false
}

// CanPerform returns true if the worker can perform the service.
// An empty services set means the worker performs every service.
func (w *WorkerSchedule) CanPerform(serviceID string) bool {
	if len(w.Services) == 0 {
		return true
	}
	_, ok := w.Services[serviceID]
	return ok
}

// ApplyDefaults подставляет значения по умолчанию для незаданных пояса и шага слотов
func (s *BusinessSchedule) ApplyDefaults(timezone string, granularity int) {
	if s.Timezone == "" {
		s.Timezone = timezone
	}
	if s.SlotGranularity <= 0 {
		s.SlotGranularity = granularity
	}
}
