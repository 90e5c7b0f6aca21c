package book_visit

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда салон не найден
	ErrBusinessNotFound = errors.New("book_visit: business not found")

	// ErrServiceNotFound возвращается, когда одна из услуг визита не найдена
	ErrServiceNotFound = errors.New("book_visit: service not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("book_visit: date is in the past")

	// ErrSlotInPast возвращается, когда время начала визита уже прошло
	ErrSlotInPast = errors.New("book_visit: start time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение MaxAdvanceDays
	ErrDateTooFarInFuture = errors.New("book_visit: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_visit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_visit: internal error")
)
