package cancel_booking

import (
	"context"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, businessID, bookingID string, req *models.CancelBookingRequest) (*models.CancelResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
