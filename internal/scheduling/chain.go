package scheduling

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
)

// ChainItem одна услуга визита с назначенным мастером
type ChainItem struct {
	ServiceID       string
	ServiceName     string
	DurationMinutes int
	WorkerID        *string
	FollowUp        *domain.FollowUp
}

// WorkerLookup поиск мастера по идентификатору
type WorkerLookup func(workerID string) (*domain.WorkerSchedule, bool)

// WorkersByID строит WorkerLookup по списку мастеров
func WorkersByID(workers []domain.WorkerSchedule) WorkerLookup {
	index := make(map[string]*domain.WorkerSchedule, len(workers))
	for i := range workers {
		index[workers[i].ID] = &workers[i]
	}
	return func(workerID string) (*domain.WorkerSchedule, bool) {
		w, ok := index[workerID]
		return w, ok
	}
}

// ChainRequest входные данные для сборки визита
type ChainRequest struct {
	Items      []ChainItem
	VisitStart time.Time
	Workers    WorkerLookup
	// Bookings уже существующие брони мастеров на день визита
	Bookings []domain.Booking
	// Exclude брони, игнорируемые при проверке пересечений (перенос визита)
	Exclude map[string]struct{}
}

// BuildChain раскладывает услуги подряд без зазоров начиная с VisitStart.
// Услуга с повторной фазой получает ее через ComputePhases от собственного старта,
// а следующая услуга начинается после окончания повторной фазы.
//
// Все пары мастер/услуга проверяются на совместимость до проверки пересечений;
// первая несовместимая пара отменяет сборку целиком. Каждый блок с назначенным мастером
// (включая повторную фазу) проверяется против уже существующих броней этого мастера.
func (e *Engine) BuildChain(req ChainRequest) (*domain.VisitChain, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyChain
	}

	if err := validateAssignments(req.Items, req.Workers); err != nil {
		return nil, err
	}

	chain := layoutChain(req.Items, req.VisitStart)
	dateKey := DateKey(req.VisitStart)

	workers := make(map[string]struct{})
	for i := range chain.Slots {
		slot := &chain.Slots[i]
		if slot.WorkerID == nil {
			continue
		}
		workers[*slot.WorkerID] = struct{}{}

		scope := ConflictScope{WorkerID: *slot.WorkerID, DateKey: dateKey, Exclude: req.Exclude}

		if res := e.CheckConflict(slot.StartAt, slot.EndAt, req.Bookings, scope); res.Conflict {
			return nil, conflictFor(res, *slot.WorkerID, slot.ServiceID)
		}
		if slot.FollowUp != nil {
			fu := slot.FollowUp
			if res := e.CheckConflict(fu.StartAt, fu.EndAt, req.Bookings, scope); res.Conflict {
				return nil, conflictFor(res, *slot.WorkerID, slot.ServiceID)
			}
		}
	}

	e.observer.ChainValidated(ChainEvent{
		Services: len(chain.Slots),
		Workers:  len(workers),
		StartAt:  chain.StartAt(),
		EndAt:    chain.EndAt(),
	})

	return chain, nil
}

// IsCompatible мастер активен и умеет выполнять услугу (пустой список услуг - умеет все)
func IsCompatible(worker *domain.WorkerSchedule, serviceID string) bool {
	return worker != nil && worker.Active && worker.CanPerform(serviceID)
}

func validateAssignments(items []ChainItem, lookup WorkerLookup) error {
	for _, item := range items {
		if item.WorkerID == nil {
			continue
		}

		var worker *domain.WorkerSchedule
		if lookup != nil {
			worker, _ = lookup(*item.WorkerID)
		}

		switch {
		case worker == nil:
			return &IncompatibleWorkerError{ServiceID: item.ServiceID, WorkerID: *item.WorkerID, Reason: "unknown worker"}
		case !worker.Active:
			return &IncompatibleWorkerError{ServiceID: item.ServiceID, WorkerID: *item.WorkerID, Reason: "worker is inactive"}
		case !worker.CanPerform(item.ServiceID):
			return &IncompatibleWorkerError{ServiceID: item.ServiceID, WorkerID: *item.WorkerID, Reason: "service not in worker's list"}
		}
	}
	return nil
}

func layoutChain(items []ChainItem, visitStart time.Time) *domain.VisitChain {
	chain := &domain.VisitChain{Slots: make([]domain.ChainSlot, 0, len(items))}
	cursor := visitStart

	for _, item := range items {
		var (
			wait, followUp int
			name           string
		)
		if item.FollowUp != nil && item.FollowUp.DurationMinutes > 0 {
			wait = item.FollowUp.WaitMinutes
			followUp = item.FollowUp.DurationMinutes
			name = item.FollowUp.Name
		}

		phases := ComputePhases(cursor, item.DurationMinutes, wait, followUp)

		slot := domain.ChainSlot{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			DurationMinutes: max(item.DurationMinutes, 0),
			WorkerID:        item.WorkerID,
			StartAt:         phases.Phase1Start,
			EndAt:           phases.Phase1End,
		}
		cursor = phases.Phase1End

		if followUp > 0 {
			slot.FollowUp = &domain.ChainFollowUp{
				Name:            name,
				DurationMinutes: followUp,
				WaitMinutes:     max(wait, 0),
				StartAt:         phases.Phase2Start,
				EndAt:           phases.Phase2End,
			}
			cursor = phases.Phase2End
		}

		chain.Slots = append(chain.Slots, slot)
	}

	return chain
}

func conflictFor(res ConflictResult, workerID, serviceID string) error {
	err := res.Err(workerID).(*ConflictError)
	err.ServiceID = serviceID
	return err
}
