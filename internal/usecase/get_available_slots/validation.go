package get_available_slots

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessID) == "" {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.WorkerID != nil && strings.TrimSpace(*req.WorkerID) == "" {
		return fmt.Errorf("%w: workerId must not be empty", ErrInvalidInput)
	}

	return nil
}

// validateDate дата не в прошлом и не дальше maxAdvanceDays от сегодня.
// Обе даты должны быть в локации салона.
func validateDate(day, now time.Time, maxAdvanceDays int) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrInvalidDate
	}

	if maxAdvanceDays > 0 && day.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
