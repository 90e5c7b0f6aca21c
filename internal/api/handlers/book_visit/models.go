package book_visit

import (
	"errors"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
	bookVisit "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/book_visit"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

var (
	errBadDate = errors.New("invalid date")
	errBadTime = errors.New("invalid start time")
)

// VisitItemRequest услуга визита
type VisitItemRequest struct {
	ServiceID string  `json:"serviceId"`
	WorkerID  *string `json:"workerId,omitempty"`
}

// BookVisitRequest HTTP request model
type BookVisitRequest struct {
	Date        string             `json:"date"`      // "2026-03-10"
	StartTime   string             `json:"startTime"` // "10:00"
	Services    []VisitItemRequest `json:"services"`
	ClientName  string             `json:"clientName"`
	ClientPhone string             `json:"clientPhone,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// VisitResponse HTTP response model
type VisitResponse struct {
	VisitID  string                   `json:"visitId"`
	StartAt  time.Time                `json:"startAt"`
	EndAt    time.Time                `json:"endAt"`
	Bookings []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookVisitRequest) ToUseCaseRequest(businessID string) (*bookVisit.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errBadDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errBadTime
	}

	items := make([]bookVisit.Item, 0, len(r.Services))
	for _, s := range r.Services {
		items = append(items, bookVisit.Item{ServiceID: s.ServiceID, WorkerID: s.WorkerID})
	}

	return &bookVisit.Request{
		BusinessID:  businessID,
		Date:        date,
		StartTime:   startTime,
		Items:       items,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookVisit.Response) *VisitResponse {
	return &VisitResponse{
		VisitID:  resp.VisitID,
		StartAt:  resp.StartAt,
		EndAt:    resp.EndAt,
		Bookings: models.FromDomainBookingList(resp.Bookings).Bookings,
	}
}
