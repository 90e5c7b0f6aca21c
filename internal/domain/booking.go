package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Phase номер фазы услуги: 1 - основная, 2 - повторная (follow-up)
type Phase int

const (
	PhaseMain     Phase = 1
	PhaseFollowUp Phase = 2
)

// Booking represents one persisted phase of a client visit.
// A two-phase service is stored as two bookings; phase 2 points back to phase 1 via ParentBookingID.
type Booking struct {
	ID              string
	BusinessID      string
	WorkerID        *string // nil = не назначен мастер
	ServiceID       string
	ServiceName     string
	DateKey         string // YYYY-MM-DD, календарный день салона
	StartAt         time.Time
	EndAt           time.Time
	Status          BookingStatus
	Phase           Phase
	ParentBookingID *string // слабая ссылка: фаза 2 -> фаза 1
	VisitID         *string // общий идентификатор визита из нескольких услуг

	ClientName  string
	ClientPhone string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking takes part in conflict and availability checks
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// AssignedTo returns true if the booking is assigned to the given worker
func (b *Booking) AssignedTo(workerID string) bool {
	return b.WorkerID != nil && *b.WorkerID == workerID
}

// IsLinkedTo returns true if either booking references the other as its parent phase
func (b *Booking) IsLinkedTo(other *Booking) bool {
	if b.ParentBookingID != nil && *b.ParentBookingID == other.ID {
		return true
	}
	return other.ParentBookingID != nil && *other.ParentBookingID == b.ID
}

// DurationMinutes длительность брони в минутах
func (b *Booking) DurationMinutes() int {
	return int(b.EndAt.Sub(b.StartAt) / time.Minute)
}

// WorkerDayFilter фильтр для получения бронирований мастера за день
type WorkerDayFilter struct {
	BusinessID       string
	WorkerID         string
	DateKey          string
	IncludeCancelled bool
}
