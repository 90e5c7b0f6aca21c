package reschedule_booking

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

	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
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

	if req.WorkerID != nil && strings.TrimSpace(*req.WorkerID) == "" {
		return fmt.Errorf("%w: workerId must not be empty", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для записи
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays > 0 && date.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
