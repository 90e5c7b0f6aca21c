package create_booking

import (
	"errors"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
	createBooking "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/create_booking"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

var (
	errBadDate = errors.New("invalid date")
	errBadTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   string  `json:"serviceId"`
	WorkerID    *string `json:"workerId,omitempty"`
	Date        string  `json:"date"`      // "2026-03-10"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking  *models.BookingResponse `json:"booking"`
	FollowUp *models.BookingResponse `json:"followUp,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(businessID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errBadDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errBadTime
	}

	return &createBooking.Request{
		BusinessID:  businessID,
		ServiceID:   r.ServiceID,
		WorkerID:    r.WorkerID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:  models.FromDomainBooking(&resp.Booking),
		FollowUp: models.FromDomainBooking(resp.FollowUp),
	}
}
