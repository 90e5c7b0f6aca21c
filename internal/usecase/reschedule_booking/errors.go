package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается, когда бронирование уже отменено
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrBusinessNotFound возвращается, когда салон не найден
	ErrBusinessNotFound = errors.New("reschedule_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга бронирования больше не существует
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: date is in the past")

	// ErrSlotInPast возвращается, когда новое время начала уже прошло
	ErrSlotInPast = errors.New("reschedule_booking: start time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение MaxAdvanceDays
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
