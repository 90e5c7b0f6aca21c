package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers"
	rescheduleBooking "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные переноса"
	msgNotFound           = "бронирование не найдено"
	msgCannotReschedule   = "отмененное бронирование нельзя перенести"
	msgBusinessNotFound   = "салон не найден"
	msgServiceNotFound    = "услуга бронирования больше не существует"
	msgDateInPast         = "дата уже прошла"
	msgSlotInPast         = "время начала уже прошло"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	bookingID := vars["bookingId"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse request: %v", err)
		if errors.Is(err, errBadTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondSchedulingError(w, err):
			h.logger.Warn("POST /bookings/{id}/reschedule - Rejected: booking_id=%s, reason=%v", bookingID, err)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking is cancelled: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotReschedule, nil)

		case errors.Is(err, rescheduleBooking.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, rescheduleBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled: old_id=%s, new_id=%s, cancelled=%d",
		bookingID, result.Booking.ID, len(result.CancelledIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
