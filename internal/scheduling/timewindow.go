package scheduling

import (
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// Window интервал [StartMin, EndMin) в минутах от полуночи
type Window struct {
	StartMin int
	EndMin   int
}

// IsEmpty в окне нет ни одной минуты
func (w Window) IsEmpty() bool {
	return w.EndMin <= w.StartMin
}

// Intersect пересечение окон. Операция коммутативна; результат может быть пустым.
func (w Window) Intersect(other Window) Window {
	return Window{
		StartMin: max(w.StartMin, other.StartMin),
		EndMin:   min(w.EndMin, other.EndMin),
	}
}

// WorkerWindowStatus результат разрешения окна мастера
type WorkerWindowStatus int

const (
	// WorkerNoConfig у мастера нет данных о доступности - работает по часам салона
	WorkerNoConfig WorkerWindowStatus = iota
	// WorkerClosed у мастера выходной в этот день
	WorkerClosed
	// WorkerOpen у мастера задано окно
	WorkerOpen
)

func (s WorkerWindowStatus) String() string {
	switch s {
	case WorkerNoConfig:
		return "no-config"
	case WorkerClosed:
		return "closed"
	case WorkerOpen:
		return "open"
	default:
		return "unknown"
	}
}

// WorkerWindow окно мастера; Window имеет смысл только при Status == WorkerOpen
type WorkerWindow struct {
	Status WorkerWindowStatus
	Window Window
}

// TimeToMinutes парсит "HH:mm" в минуты от полуночи
func TimeToMinutes(hhmm string) (int, error) {
	return types.ParseMinutes(hhmm)
}

// MinutesToTime форматирует минуты в "HH:mm". Без wrap значения вне суток - ошибка.
func MinutesToTime(minutes int, wrap bool) (string, error) {
	return types.FormatMinutes(minutes, wrap)
}

// DateKey календарный ключ даты "YYYY-MM-DD" в локации самой даты
func DateKey(date time.Time) string {
	return date.Format(domain.DateFormat)
}

// DayStart полночь календарного дня date в его собственной локации
func DayStart(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// At момент времени с настенным временем minutes в день date.
// Минуты за пределами суток переносятся на соседний день.
func At(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location())
}

// MinutesOf настенные минуты момента t относительно полуночи дня date
// в локации date (может быть вне [0, 1440) для соседних дней)
func MinutesOf(date time.Time, t time.Time) int {
	local := t.In(date.Location())
	y1, m1, d1 := date.Date()
	y2, m2, d2 := local.Date()
	days := int(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC).Sub(time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)) / (24 * time.Hour))
	return days*24*60 + local.Hour()*60 + local.Minute()
}

// ResolveBusinessWindow возвращает окно работы салона на дату или nil, если салон закрыт:
// дата в списке закрытых, день недели выключен, либо конец не позже начала.
func ResolveBusinessWindow(hours domain.WeeklyHours, closedDates []string, date time.Time) (*Window, error) {
	key := DateKey(date)
	for _, closed := range closedDates {
		if closed == key {
			return nil, nil
		}
	}

	day, ok := hours[date.Weekday()]
	if !ok || !day.Enabled {
		return nil, nil
	}

	start, err := TimeToMinutes(string(day.Start))
	if err != nil {
		return nil, fmt.Errorf("business hours %s start: %w", date.Weekday(), err)
	}
	end, err := TimeToMinutes(string(day.End))
	if err != nil {
		return nil, fmt.Errorf("business hours %s end: %w", date.Weekday(), err)
	}

	w := Window{StartMin: start, EndMin: end}
	if w.IsEmpty() {
		return nil, nil
	}
	return &w, nil
}

// ResolveWorkerWindow разрешает окно мастера на дату.
// Нет ни одной записи доступности - WorkerNoConfig. Запись дня отсутствует или без open/close -
// WorkerClosed. Иначе WorkerOpen с окном (оно может оказаться пустым).
func ResolveWorkerWindow(worker *domain.WorkerSchedule, date time.Time) (WorkerWindow, error) {
	if worker == nil || !worker.HasAvailabilityConfig() {
		return WorkerWindow{Status: WorkerNoConfig}, nil
	}

	entry, ok := worker.DayEntry(date.Weekday())
	if !ok || entry.IsOff() {
		return WorkerWindow{Status: WorkerClosed}, nil
	}

	open, err := TimeToMinutes(string(*entry.Open))
	if err != nil {
		return WorkerWindow{}, fmt.Errorf("worker %s %s open: %w", worker.ID, date.Weekday(), err)
	}
	closeMin, err := TimeToMinutes(string(*entry.Close))
	if err != nil {
		return WorkerWindow{}, fmt.Errorf("worker %s %s close: %w", worker.ID, date.Weekday(), err)
	}

	return WorkerWindow{
		Status: WorkerOpen,
		Window: Window{StartMin: open, EndMin: closeMin},
	}, nil
}

// EffectiveWindow пересекает окно салона с окном мастера.
// nil означает, что в этот день у мастера нет ни одной рабочей минуты.
func EffectiveWindow(business *Window, worker WorkerWindow) *Window {
	if business == nil {
		return nil
	}

	var w Window
	switch worker.Status {
	case WorkerNoConfig:
		w = *business
	case WorkerClosed:
		return nil
	default:
		w = business.Intersect(worker.Window)
	}

	if w.IsEmpty() {
		return nil
	}
	return &w
}
