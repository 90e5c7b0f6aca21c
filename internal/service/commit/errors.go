package commit

import "errors"

var (
	// ErrOutsideWorkingHours блок визита не помещается в рабочее окно салона или мастера
	ErrOutsideWorkingHours = errors.New("commit: outside working hours")

	// ErrDayLocked день мастера занят параллельной записью, запрос можно повторить
	ErrDayLocked = errors.New("commit: worker day is being booked concurrently")

	// ErrReplacedChanged заменяемые брони были отменены или изменены параллельно
	ErrReplacedChanged = errors.New("commit: replaced bookings changed concurrently")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("commit: internal error")
)
