package domain

import "time"

// FollowUp повторная фаза услуги (например, смывание краски после выдержки)
type FollowUp struct {
	Name            string
	DurationMinutes int
	WaitMinutes     int // пауза между концом основной фазы и началом повторной
}

// ServiceDefinition услуга из каталога салона
type ServiceDefinition struct {
	ID              string
	BusinessID      string
	Name            string
	DurationMinutes int
	FollowUp        *FollowUp
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasFollowUp returns true if the service has a second phase with non-zero duration
func (s *ServiceDefinition) HasFollowUp() bool {
	return s.FollowUp != nil && s.FollowUp.DurationMinutes > 0
}
