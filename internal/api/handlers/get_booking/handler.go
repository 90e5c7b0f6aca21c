package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings"
)

const (
	msgInvalidInput = "некорректные параметры запроса"
	msgNotFound     = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	bookingID := vars["bookingId"]

	booking, err := h.service.GetByID(r.Context(), businessID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: business_id=%s, booking_id=%s", businessID, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
