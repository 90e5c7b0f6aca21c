package get_worker_bookings

import (
	"context"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
)

type BookingService interface {
	GetWorkerBookings(ctx context.Context, req *models.GetWorkerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
