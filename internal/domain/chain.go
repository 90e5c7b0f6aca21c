package domain

import "time"

// ChainFollowUp повторная фаза внутри блока визита
type ChainFollowUp struct {
	Name            string
	DurationMinutes int
	WaitMinutes     int
	StartAt         time.Time
	EndAt           time.Time
}

// ChainSlot один блок визита: услуга, мастер и точное время
type ChainSlot struct {
	ServiceID       string
	ServiceName     string
	DurationMinutes int
	WorkerID        *string
	StartAt         time.Time
	EndAt           time.Time
	FollowUp        *ChainFollowUp
}

// BlockEnd конец блока с учетом повторной фазы
func (s *ChainSlot) BlockEnd() time.Time {
	if s.FollowUp != nil {
		return s.FollowUp.EndAt
	}
	return s.EndAt
}

// VisitChain визит из нескольких услуг, идущих подряд
type VisitChain struct {
	Slots []ChainSlot
}

// StartAt начало визита
func (c *VisitChain) StartAt() time.Time {
	if len(c.Slots) == 0 {
		return time.Time{}
	}
	return c.Slots[0].StartAt
}

// EndAt конец визита (включая повторную фазу последней услуги)
func (c *VisitChain) EndAt() time.Time {
	if len(c.Slots) == 0 {
		return time.Time{}
	}
	return c.Slots[len(c.Slots)-1].BlockEnd()
}
