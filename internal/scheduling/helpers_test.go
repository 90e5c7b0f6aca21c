package scheduling

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// testDay вторник, 10 марта 2026
var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// at время в testDay
func at(hhmm string) time.Time {
	t, err := types.TimeString(hhmm).OnDate(testDay)
	if err != nil {
		panic(err)
	}
	return t
}

func everyDay(start, end string) domain.WeeklyHours {
	hours := make(domain.WeeklyHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = domain.DayHours{Enabled: true, Start: types.TimeString(start), End: types.TimeString(end)}
	}
	return hours
}

func booking(id, workerID, start, end string) domain.Booking {
	return domain.Booking{
		ID:       id,
		WorkerID: ptr.Ptr(workerID),
		DateKey:  DateKey(testDay),
		StartAt:  at(start),
		EndAt:    at(end),
		Status:   domain.StatusConfirmed,
		Phase:    domain.PhaseMain,
	}
}

func dayEntry(weekday time.Weekday, open, close string) domain.WorkerDay {
	return domain.WorkerDay{
		Weekday: weekday,
		Open:    ptr.Ptr(types.TimeString(open)),
		Close:   ptr.Ptr(types.TimeString(close)),
	}
}

// recordingObserver запоминает события движка
type recordingObserver struct {
	slots     []SlotsEvent
	conflicts []ConflictEvent
	chains    []ChainEvent
}

func (o *recordingObserver) SlotsComputed(e SlotsEvent)    { o.slots = append(o.slots, e) }
func (o *recordingObserver) ConflictFound(e ConflictEvent) { o.conflicts = append(o.conflicts, e) }
func (o *recordingObserver) ChainValidated(e ChainEvent)   { o.chains = append(o.chains, e) }
