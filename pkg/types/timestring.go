package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrMinutesOutOfRange возвращается, когда количество минут выходит за пределы суток
	ErrMinutesOutOfRange = errors.New("minutes out of day range")
)

// TimeString время суток в формате "HH:MM" (24 часа, с ведущими нулями)
type TimeString string

// ParseMinutes парсит "HH:MM" в количество минут от полуночи.
// Час допускается из одной цифры ("9:30"), минуты всегда из двух.
func ParseMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := parseDigits(hh)
	if err != nil || hour > 23 {
		return 0, fmt.Errorf("%w: %q: hour out of range", ErrInvalidTimeFormat, s)
	}

	minute, err := parseDigits(mm)
	if err != nil || minute > 59 {
		return 0, fmt.Errorf("%w: %q: minute out of range", ErrInvalidTimeFormat, s)
	}

	return hour*60 + minute, nil
}

// parseDigits не допускает знаков и пробелов, которые принимает strconv.Atoi
func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	return strconv.Atoi(s)
}

// FormatMinutes форматирует минуты от полуночи в "HH:MM".
// Если wrap = true, значение приводится по модулю суток; иначе выход за [0, 1440) - ошибка.
func FormatMinutes(minutes int, wrap bool) (string, error) {
	if wrap {
		minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	}
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfRange, minutes)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ParseMinutes(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	s, err := FormatMinutes(minutes, false)
	if err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// NewTimeString извлекает время суток из time.Time (в его собственной локации)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	return ParseMinutes(string(t))
}

// AddMinutes возвращает новое время, сдвинутое на указанное количество минут (в пределах суток)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore строго раньше другого времени. Некорректные значения не сравниваются.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter строго позже другого времени
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// IsZero время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// OnDate возвращает момент с настенным временем t в указанную дату (в локации даты)
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. Поддерживает TIME из postgres ("10:00:00") и текст ("10:00").
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}

	// "HH:MM:SS" -> "HH:MM"
	if len(raw) >= 8 && raw[5] == ':' {
		raw = raw[:5]
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
