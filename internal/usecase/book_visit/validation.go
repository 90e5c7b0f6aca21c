package book_visit

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessID) == "" {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.Items) > domain.MaxVisitServices {
		return fmt.Errorf("%w: visit can contain at most %d services", ErrInvalidInput, domain.MaxVisitServices)
	}

	for i, item := range req.Items {
		if strings.TrimSpace(item.ServiceID) == "" {
			return fmt.Errorf("%w: items[%d].serviceId is required", ErrInvalidInput, i)
		}
		if item.WorkerID != nil && strings.TrimSpace(*item.WorkerID) == "" {
			return fmt.Errorf("%w: items[%d].workerId must not be empty", ErrInvalidInput, i)
		}
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(visitDate time.Time, now time.Time, advanceBookingDays int) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if visitDate.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays > 0 && visitDate.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
