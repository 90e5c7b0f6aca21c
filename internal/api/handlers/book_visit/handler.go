package book_visit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers"
	bookVisit "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/book_visit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты визита, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные визита"
	msgBusinessNotFound   = "салон не найден"
	msgServiceNotFound    = "одна из услуг не найдена"
	msgDateInPast         = "дата визита уже прошла"
	msgSlotInPast         = "время начала уже прошло"
	msgDateTooFar         = "дата визита слишком далеко в будущем"
)

type Handler struct {
	useCase BookVisitUseCase
	logger  Logger
}

func NewHandler(useCase BookVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/visits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req BookVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/visits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/visits - Failed to parse request: %v", err)
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
			h.logger.Warn("POST /businesses/{id}/visits - Rejected: business_id=%s, services=%d, reason=%v",
				businessID, len(req.Services), err)

		case errors.Is(err, bookVisit.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/visits - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookVisit.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/visits - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookVisit.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/visits - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookVisit.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookVisit.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, bookVisit.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /businesses/{id}/visits - Failed to book visit: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/visits - Visit booked successfully: visit_id=%s, business_id=%s, bookings=%d",
		result.VisitID, businessID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
