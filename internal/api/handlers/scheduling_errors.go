package handlers

import (
	"errors"
	"net/http"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
)

const (
	msgWorkerConflict     = "мастер занят в выбранное время"
	msgIncompatibleWorker = "мастер не выполняет выбранную услугу"
	msgOutsideHours       = "время визита выходит за рабочие часы"
	msgDayLocked          = "день мастера сейчас бронируется, повторите запрос"
	msgReplacedChanged    = "бронь уже изменена или отменена"
)

// ConflictDetails занятый интервал мастера
type ConflictDetails struct {
	WorkerID  string `json:"workerId"`
	ServiceID string `json:"serviceId,omitempty"`
	BookingID string `json:"bookingId"`
	Start     string `json:"start"` // "10:00"
	End       string `json:"end"`   // "10:30"
}

// IncompatibleDetails пара мастер/услуга, из-за которой визит отклонен
type IncompatibleDetails struct {
	WorkerID  string `json:"workerId"`
	ServiceID string `json:"serviceId"`
	Reason    string `json:"reason"`
}

// RespondSchedulingError отвечает на ошибки проверки визита.
// Возвращает false, если ошибка не относится к расписанию.
func RespondSchedulingError(w http.ResponseWriter, err error) bool {
	var conflict *scheduling.ConflictError
	var incompatible *scheduling.IncompatibleWorkerError

	switch {
	case errors.As(err, &conflict):
		RespondConflict(w, msgWorkerConflict, ConflictDetails{
			WorkerID:  conflict.WorkerID,
			ServiceID: conflict.ServiceID,
			BookingID: conflict.BookingID,
			Start:     conflict.Start.Format(domain.TimeFormat),
			End:       conflict.End.Format(domain.TimeFormat),
		})

	case errors.As(err, &incompatible):
		RespondUnprocessable(w, msgIncompatibleWorker, IncompatibleDetails{
			WorkerID:  incompatible.WorkerID,
			ServiceID: incompatible.ServiceID,
			Reason:    incompatible.Reason,
		})

	case errors.Is(err, commit.ErrOutsideWorkingHours):
		RespondUnprocessable(w, msgOutsideHours, nil)

	case errors.Is(err, commit.ErrDayLocked):
		RespondConflict(w, msgDayLocked, nil)
	case errors.Is(err, commit.ErrReplacedChanged):
		RespondConflict(w, msgReplacedChanged, nil)

	default:
		return false
	}
	return true
}
