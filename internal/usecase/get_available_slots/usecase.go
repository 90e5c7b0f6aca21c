package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	catalogRepo  CatalogRepository
	workerRepo   WorkerRepository
	engine       *scheduling.Engine
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	workerRepo WorkerRepository,
	engine *scheduling.Engine,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		catalogRepo:  catalogRepo,
		workerRepo:   workerRepo,
		engine:       engine,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, service=%s, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание салона
	schedule, err := uc.businessRepo.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	schedule.ApplyDefaults(uc.settings.DefaultTimezone, uc.settings.DefaultGranularity)

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Дата в локации салона
	loc := schedule.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	now := uc.timeProvider.Now().In(loc)

	if err := validateDate(day, now, uc.settings.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %s: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	response := &Response{
		Date:            scheduling.DateKey(day),
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           make([]Slot, 0),
	}

	// 5. Окно салона на дату
	business, err := scheduling.ResolveBusinessWindow(schedule.WeeklyHours, schedule.ClosedDates, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if business == nil {
		uc.logger.Info("GetAvailableSlots: business id=%s is closed on %s", req.BusinessID, response.Date)
		return response, nil
	}

	// 6. Мастера, которые могут выполнить услугу
	workers, err := uc.workerRepo.ListByBusiness(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list workers of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to list workers: %v", ErrInternal, err)
	}

	candidates, err := selectWorkers(workers, req.WorkerID, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 7. Брони салона на день
	bookings, err := uc.bookingRepo.GetBusinessDay(ctx, req.BusinessID, response.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for %s: %v", response.Date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Слоты каждого мастера
	byStart := make(map[string][]string)
	for i := range candidates {
		worker := &candidates[i]

		ww, err := scheduling.ResolveWorkerWindow(worker, day)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: invalid availability of worker id=%s: %v", worker.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		starts, err := uc.engine.ListAvailableSlots(scheduling.SlotQuery{
			Date:            day,
			Granularity:     schedule.SlotGranularity,
			Business:        business,
			Worker:          ww,
			WorkerID:        worker.ID,
			DurationMinutes: service.DurationMinutes,
			Bookings:        bookings,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to compute slots of worker id=%s: %v", worker.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		window := scheduling.EffectiveWindow(business, ww)
		for _, start := range starts {
			startAt, err := types.TimeString(start).OnDate(day)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInternal, err)
			}
			if !startAt.After(now) {
				continue
			}
			if !followUpFits(service, worker.ID, day, startAt, window, bookings) {
				continue
			}
			byStart[start] = append(byStart[start], worker.ID)
		}
	}

	// 9. Объединяем по времени
	starts := make([]string, 0, len(byStart))
	for start := range byStart {
		starts = append(starts, start)
	}
	sort.Strings(starts)

	for _, start := range starts {
		response.Slots = append(response.Slots, Slot{
			StartTime: types.TimeString(start),
			WorkerIDs: byStart[start],
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for service=%s on %s (%d workers)",
		len(response.Slots), req.ServiceID, response.Date, len(candidates))

	return response, nil
}

// selectWorkers конкретный мастер должен существовать и уметь услугу;
// без мастера берутся все активные мастера, которые умеют услугу
func selectWorkers(workers []domain.WorkerSchedule, workerID *string, serviceID string) ([]domain.WorkerSchedule, error) {
	if workerID != nil {
		for _, w := range workers {
			if w.ID != *workerID {
				continue
			}
			if !scheduling.IsCompatible(&w, serviceID) {
				reason := "service not in worker's list"
				if !w.Active {
					reason = "worker is inactive"
				}
				return nil, &scheduling.IncompatibleWorkerError{ServiceID: serviceID, WorkerID: w.ID, Reason: reason}
			}
			return []domain.WorkerSchedule{w}, nil
		}
		return nil, fmt.Errorf("%w: id=%s", ErrWorkerNotFound, *workerID)
	}

	selected := make([]domain.WorkerSchedule, 0, len(workers))
	for i := range workers {
		if scheduling.IsCompatible(&workers[i], serviceID) {
			selected = append(selected, workers[i])
		}
	}
	return selected, nil
}

// followUpFits повторная фаза слота должна лежать в окне мастера и не пересекаться с его бронями
func followUpFits(
	service *domain.ServiceDefinition,
	workerID string,
	day, startAt time.Time,
	window *scheduling.Window,
	bookings []domain.Booking,
) bool {
	if !service.HasFollowUp() {
		return true
	}

	phases := scheduling.ComputePhases(startAt, service.DurationMinutes, service.FollowUp.WaitMinutes, service.FollowUp.DurationMinutes)
	startMin := scheduling.MinutesOf(day, phases.Phase2Start)
	if !scheduling.FitsWindow(window, startMin, service.FollowUp.DurationMinutes) {
		return false
	}

	res := scheduling.HasConflict(phases.Phase2Start, phases.Phase2End, bookings, scheduling.ConflictScope{
		WorkerID: workerID,
		DateKey:  scheduling.DateKey(day),
	})
	return !res.Conflict
}
