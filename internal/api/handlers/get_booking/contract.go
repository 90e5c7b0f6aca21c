package get_booking

import (
	"context"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, businessID, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
