package scheduling

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// ConflictScope ограничивает набор броней, участвующих в проверке
type ConflictScope struct {
	WorkerID string
	DateKey  string
	// Exclude брони, которые игнорируются (редактируемая бронь и связанная с ней фаза)
	Exclude map[string]struct{}
}

// ExcludeIDs собирает множество исключаемых идентификаторов
func ExcludeIDs(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// ConflictResult результат проверки: есть ли пересечение и с какой бронью
type ConflictResult struct {
	Conflict bool
	Booking  *domain.Booking
	Start    time.Time
	End      time.Time
}

// Err возвращает *ConflictError, если пересечение найдено, иначе nil
func (r ConflictResult) Err(workerID string) error {
	if !r.Conflict {
		return nil
	}
	bookingID := ""
	if r.Booking != nil {
		bookingID = r.Booking.ID
	}
	return &ConflictError{
		WorkerID:  workerID,
		BookingID: bookingID,
		Start:     r.Start,
		End:       r.End,
	}
}

// Overlaps полуоткрытые интервалы [s1,e1) и [s2,e2) пересекаются.
// Касание (e1 == s2) пересечением не считается - брони могут идти встык.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// HasConflict проверяет кандидата [start, end) против броней мастера за день.
// Учитываются только подтвержденные брони этого мастера в этот день, кроме исключенных.
// Возвращается первая конфликтующая бронь в порядке входного списка.
func HasConflict(start, end time.Time, bookings []domain.Booking, scope ConflictScope) ConflictResult {
	if scope.WorkerID == "" {
		return ConflictResult{}
	}

	for i := range bookings {
		b := &bookings[i]
		if !b.IsConfirmed() || !b.AssignedTo(scope.WorkerID) {
			continue
		}
		if scope.DateKey != "" && b.DateKey != scope.DateKey {
			continue
		}
		if _, skip := scope.Exclude[b.ID]; skip {
			continue
		}

		if Overlaps(start, end, b.StartAt, b.EndAt) {
			return ConflictResult{
				Conflict: true,
				Booking:  b,
				Start:    b.StartAt,
				End:      b.EndAt,
			}
		}
	}

	return ConflictResult{}
}

// LinkedExclusions исключает бронь и все фазы, связанные с ней через ParentBookingID
func LinkedExclusions(target *domain.Booking, bookings []domain.Booking) map[string]struct{} {
	set := ExcludeIDs(target.ID)
	if target.ParentBookingID != nil {
		set[*target.ParentBookingID] = struct{}{}
	}
	for i := range bookings {
		if bookings[i].IsLinkedTo(target) {
			set[bookings[i].ID] = struct{}{}
		}
	}
	return set
}
