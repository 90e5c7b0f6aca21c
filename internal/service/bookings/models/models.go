package models

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
	// Cascade отменить и связанную фазу услуги (основную или повторную)
	Cascade bool `json:"cascade,omitempty"`
}

// GetWorkerBookingsRequest запрос на получение бронирований мастера за день
type GetWorkerBookingsRequest struct {
	BusinessID       string `json:"businessId"`
	WorkerID         string `json:"workerId"`
	Date             string `json:"date"` // "2026-03-10"
	IncludeCancelled bool   `json:"includeCancelled,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string    `json:"id"`
	BusinessID      string    `json:"businessId"`
	WorkerID        *string   `json:"workerId,omitempty"`
	ServiceID       string    `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	Date            string    `json:"date"` // "2026-03-10"
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Phase           int       `json:"phase"`
	ParentBookingID *string   `json:"parentBookingId,omitempty"`
	VisitID         *string   `json:"visitId,omitempty"`

	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResponse ответ с отмененными фазами
type CancelResponse struct {
	CancelledIDs []string `json:"cancelledIds"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		WorkerID:           b.WorkerID,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		Date:               b.DateKey,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		DurationMinutes:    b.DurationMinutes(),
		Status:             string(b.Status),
		Phase:              int(b.Phase),
		ParentBookingID:    b.ParentBookingID,
		VisitID:            b.VisitID,
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i]))
	}

	return resp
}
