package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers"
	createBooking "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBusinessNotFound   = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDateInPast         = "дата бронирования уже прошла"
	msgSlotInPast         = "время начала уже прошло"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Failed to parse request: %v", err)
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
			h.logger.Warn("POST /businesses/{id}/bookings - Rejected: business_id=%s, service_id=%s, reason=%v",
				businessID, req.ServiceID, err)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/bookings - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /businesses/{id}/bookings - Failed to create booking: business_id=%s, service_id=%s, error=%v",
				businessID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/bookings - Booking created successfully: booking_id=%s, business_id=%s",
		result.Booking.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
