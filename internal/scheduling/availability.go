package scheduling

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// SlotQuery входные данные для расчета слотов мастера на дату
type SlotQuery struct {
	// Date любая точка календарного дня в локации салона
	Date time.Time
	// Granularity шаг между стартами кандидатов; <= 0 - значение по умолчанию
	Granularity int
	// Business окно салона; nil - салон закрыт
	Business *Window
	Worker   WorkerWindow
	WorkerID string
	// DurationMinutes длительность, под которую подбирается слот (основная фаза услуги)
	DurationMinutes int
	// Bookings снимок броней; фильтрация по мастеру, дню и статусу выполняется здесь
	Bookings []domain.Booking
}

// ListAvailableSlots возвращает свободные старты "HH:mm" в порядке возрастания.
//
// Алгоритм:
//  1. салон закрыт или у мастера выходной - пустой список;
//  2. эффективное окно = окно салона ∩ окно мастера (без конфигурации мастера - окно салона);
//  3. кандидаты идут с шагом Granularity от начала окна, пока start+duration <= конец окна;
//  4. кандидаты, пересекающиеся с подтвержденными бронями мастера за день, отбрасываются.
func (e *Engine) ListAvailableSlots(q SlotQuery) ([]string, error) {
	slots := make([]string, 0)
	dateKey := DateKey(q.Date)

	window := EffectiveWindow(q.Business, q.Worker)
	if window == nil || q.DurationMinutes <= 0 {
		e.observer.SlotsComputed(SlotsEvent{WorkerID: q.WorkerID, DateKey: dateKey, DurationMinutes: q.DurationMinutes})
		return slots, nil
	}

	step := q.Granularity
	if step <= 0 {
		step = domain.DefaultSlotGranularityMinutes
	}

	scope := ConflictScope{WorkerID: q.WorkerID, DateKey: dateKey}
	candidates := 0

	for start := window.StartMin; start+q.DurationMinutes <= window.EndMin; start += step {
		candidates++

		from := At(q.Date, start)
		to := from.Add(time.Duration(q.DurationMinutes) * time.Minute)
		if HasConflict(from, to, q.Bookings, scope).Conflict {
			continue
		}

		hhmm, err := MinutesToTime(start, false)
		if err != nil {
			return nil, err
		}
		slots = append(slots, hhmm)
	}

	e.observer.SlotsComputed(SlotsEvent{
		WorkerID:        q.WorkerID,
		DateKey:         dateKey,
		DurationMinutes: q.DurationMinutes,
		Candidates:      candidates,
		Available:       len(slots),
	})

	return slots, nil
}

// FitsWindow проверяет, что интервал [startMin, startMin+duration) целиком внутри окна
func FitsWindow(w *Window, startMin, durationMinutes int) bool {
	if w == nil {
		return false
	}
	return startMin >= w.StartMin && startMin+durationMinutes <= w.EndMin
}
