package cancel_booking

import (
	"strings"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
	// Cascade отменить и вторую фазу той же услуги
	Cascade bool `json:"cascade,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{Cascade: r.Cascade}

	// Пустая причина равносильна ее отсутствию
	if r.CancellationReason != nil {
		if reason := strings.TrimSpace(*r.CancellationReason); reason != "" {
			req.Reason = &reason
		}
	}

	return req
}
