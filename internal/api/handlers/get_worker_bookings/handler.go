package get_worker_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/api/handlers"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/businesses/{businessId}/workers/{workerId}/bookings
// Query params: date (обязательно), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	workerID := vars["workerId"]

	serviceReq, err := ToServiceRequest(businessID, workerID,
		r.URL.Query().Get("date"), r.URL.Query().Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetWorkerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /workers/{id}/bookings - Failed to get bookings: business_id=%s, worker_id=%s, error=%v",
				businessID, workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/bookings - Bookings retrieved successfully: worker_id=%s, date=%s, count=%d",
		workerID, serviceReq.Date, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
