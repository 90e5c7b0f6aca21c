package scheduling

import "time"

// Phases точные границы основной и повторной фаз услуги
type Phases struct {
	Phase1Start time.Time
	Phase1End   time.Time
	Phase2Start time.Time
	Phase2End   time.Time
}

// ComputePhases считает время фаз от одного старта.
// Пауза отсчитывается от конца первой фазы: Phase2Start - Phase1End == wait.
// Отрицательные значения приводятся к нулю. Без повторной фазы (followUp == 0)
// вызывающий код просто игнорирует поля второй фазы.
func ComputePhases(start time.Time, durationMinutes, waitMinutes, followUpMinutes int) Phases {
	duration := minutes(durationMinutes)
	wait := minutes(waitMinutes)
	followUp := minutes(followUpMinutes)

	p := Phases{Phase1Start: start}
	p.Phase1End = p.Phase1Start.Add(duration)
	p.Phase2Start = p.Phase1End.Add(wait)
	p.Phase2End = p.Phase2Start.Add(followUp)
	return p
}

func minutes(m int) time.Duration {
	if m < 0 {
		m = 0
	}
	return time.Duration(m) * time.Minute
}
