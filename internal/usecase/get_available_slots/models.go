package get_available_slots

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// Settings значения по умолчанию из конфигурации
type Settings struct {
	DefaultGranularity int
	DefaultTimezone    string
	MaxAdvanceDays     int // 0 - без ограничения
}

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID string    // ID салона
	ServiceID  string    // ID услуги
	Date       time.Time // Календарная дата (время и пояс игнорируются)
	WorkerID   *string   // Конкретный мастер; nil - все подходящие мастера
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string // YYYY-MM-DD
	BusinessID      string
	ServiceID       string
	DurationMinutes int    // длительность основной фазы
	Slots           []Slot // по возрастанию времени
}

// Slot свободный старт и мастера, которые свободны в это время
type Slot struct {
	StartTime types.TimeString
	WorkerIDs []string
}
