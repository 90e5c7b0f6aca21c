package reschedule_booking

import (
	"errors"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
	rescheduleBooking "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/reschedule_booking"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

var (
	errBadDate = errors.New("invalid date")
	errBadTime = errors.New("invalid start time")
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date      string  `json:"date"`      // "2026-03-11"
	StartTime string  `json:"startTime"` // "14:00"
	WorkerID  *string `json:"workerId,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	CancelledIDs []string                `json:"cancelledIds"`
	Booking      *models.BookingResponse `json:"booking"`
	FollowUp     *models.BookingResponse `json:"followUp,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(businessID, bookingID string) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errBadDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errBadTime
	}

	return &rescheduleBooking.Request{
		BusinessID: businessID,
		BookingID:  bookingID,
		Date:       date,
		StartTime:  startTime,
		WorkerID:   r.WorkerID,
		Reason:     r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		CancelledIDs: resp.CancelledIDs,
		Booking:      models.FromDomainBooking(&resp.Booking),
		FollowUp:     models.FromDomainBooking(resp.FollowUp),
	}
}
