package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

var (
	// ErrInvalidTimeFormat некорректная строка "HH:mm" - всегда ошибка вызывающего кода
	ErrInvalidTimeFormat = types.ErrInvalidTimeFormat

	// ErrMinutesOutOfRange минуты за пределами суток без явного запроса на перенос
	ErrMinutesOutOfRange = types.ErrMinutesOutOfRange

	// ErrIncompatibleWorkerAssignment мастер не может выполнить назначенную услугу
	ErrIncompatibleWorkerAssignment = errors.New("scheduling: incompatible worker assignment")

	// ErrWorkerConflict интервал пересекается с подтвержденной бронью мастера
	ErrWorkerConflict = errors.New("scheduling: worker conflict")

	// ErrEmptyChain визит без услуг
	ErrEmptyChain = errors.New("scheduling: visit chain has no services")
)

// IncompatibleWorkerError описывает пару услуга/мастер, из-за которой визит не собран
type IncompatibleWorkerError struct {
	ServiceID string
	WorkerID  string
	Reason    string
}

func (e *IncompatibleWorkerError) Error() string {
	return fmt.Sprintf("%v: worker %s cannot perform service %s (%s)",
		ErrIncompatibleWorkerAssignment, e.WorkerID, e.ServiceID, e.Reason)
}

func (e *IncompatibleWorkerError) Unwrap() error {
	return ErrIncompatibleWorkerAssignment
}

// ConflictError описывает найденное пересечение с существующей бронью
type ConflictError struct {
	WorkerID  string
	ServiceID string // услуга кандидата, если известна
	BookingID string // конфликтующая бронь
	Start     time.Time
	End       time.Time
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%v: worker %s is busy %s-%s", ErrWorkerConflict, e.WorkerID,
		e.Start.Format(domain.TimeFormat), e.End.Format(domain.TimeFormat))
	if e.ServiceID != "" {
		msg += fmt.Sprintf(" (service %s)", e.ServiceID)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrWorkerConflict
}
