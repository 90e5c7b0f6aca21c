package commit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/daylock"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
)

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Service фиксация визита: повторная проверка на свежем снимке и сохранение броней.
// Снимок читается внутри сериализуемой транзакции с блокировкой строк,
// дополнительно дни мастеров блокируются в Redis (если он настроен).
type Service struct {
	bookingRepo BookingRepository
	workerRepo  WorkerRepository
	txManager   TransactionManager
	locker      DayLocker
	engine      *scheduling.Engine
	ids         IDGenerator
	metrics     *metrics.Metrics
	logger      Logger
}

// NewService создает сервис фиксации. locker и m могут быть nil.
func NewService(
	bookingRepo BookingRepository,
	workerRepo WorkerRepository,
	txManager TransactionManager,
	locker DayLocker,
	engine *scheduling.Engine,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		workerRepo:  workerRepo,
		txManager:   txManager,
		locker:      locker,
		engine:      engine,
		ids:         UUIDGenerator{},
		metrics:     m,
		logger:      logger,
	}
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов)
func (s *Service) WithIDGenerator(ids IDGenerator) *Service {
	s.ids = ids
	return s
}

// Commit перепроверяет визит и сохраняет его. Ошибки движка
// (scheduling.ErrIncompatibleWorkerAssignment, scheduling.ErrWorkerConflict) возвращаются как есть.
func (s *Service) Commit(ctx context.Context, req *Request) (*Result, error) {
	businessID := req.Schedule.BusinessID
	dateKey := scheduling.DateKey(req.VisitStart)

	release, err := s.lockDays(ctx, businessID, dateKey, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("Commit: failed to release day lock: %v", err)
		}
	}()

	var result *Result

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		workers, err := s.workerRepo.ListByBusiness(txCtx, businessID)
		if err != nil {
			return fmt.Errorf("%w: failed to load workers: %v", ErrInternal, err)
		}

		snapshot, err := s.loadSnapshot(txCtx, businessID, dateKey, req.Items)
		if err != nil {
			return err
		}

		exclude := make(map[string]struct{}, len(req.Replace))
		for _, b := range req.Replace {
			exclude[b.ID] = struct{}{}
		}

		chain, err := s.engine.BuildChain(scheduling.ChainRequest{
			Items:      req.Items,
			VisitStart: req.VisitStart,
			Workers:    scheduling.WorkersByID(workers),
			Bookings:   snapshot,
			Exclude:    exclude,
		})
		if err != nil {
			return err
		}

		if err := checkWorkingHours(chain, req.Schedule, scheduling.WorkersByID(workers), req.VisitStart); err != nil {
			return err
		}

		if len(req.Replace) > 0 {
			ids := make([]string, 0, len(req.Replace))
			for _, b := range req.Replace {
				ids = append(ids, b.ID)
			}
			cancelled, err := s.bookingRepo.CancelMany(txCtx, businessID, ids, req.CancellationReason)
			if err != nil {
				return fmt.Errorf("%w: failed to cancel replaced bookings: %v", ErrInternal, err)
			}
			// каждая заменяемая бронь должна быть подтверждена на момент отмены
			if cancelled != int64(len(ids)) {
				return fmt.Errorf("%w: cancelled %d of %d", ErrReplacedChanged, cancelled, len(ids))
			}
		}

		created, err := s.persist(txCtx, req, chain, dateKey)
		if err != nil {
			return err
		}

		result = &Result{Chain: chain, Bookings: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		kind := "single"
		if len(req.Items) > 1 {
			kind = "visit"
		}
		if len(req.Replace) > 0 {
			kind = "reschedule"
		}
		s.metrics.BookingsCreated.WithLabelValues(kind).Add(float64(len(result.Bookings)))
	}

	return result, nil
}

func (s *Service) lockDays(ctx context.Context, businessID, dateKey string, req *Request) (daylock.ReleaseFunc, error) {
	noop := func(context.Context) error { return nil }
	if s.locker == nil {
		return noop, nil
	}

	keys := make([]daylock.Key, 0, len(req.Items)+len(req.Replace))
	for _, item := range req.Items {
		if item.WorkerID != nil {
			keys = append(keys, daylock.Key{BusinessID: businessID, WorkerID: *item.WorkerID, DateKey: dateKey})
		}
	}
	for _, b := range req.Replace {
		if b.WorkerID != nil {
			keys = append(keys, daylock.Key{BusinessID: businessID, WorkerID: *b.WorkerID, DateKey: b.DateKey})
		}
	}
	if len(keys) == 0 {
		return noop, nil
	}

	release, err := s.locker.Acquire(ctx, keys...)
	if errors.Is(err, daylock.ErrLocked) {
		if s.metrics != nil {
			s.metrics.DayLockContention.Inc()
		}
		s.logger.Warn("Commit: %v", err)
		return nil, ErrDayLocked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire day lock: %v", ErrInternal, err)
	}
	return release, nil
}

// loadSnapshot читает подтвержденные брони всех назначенных мастеров за день (FOR UPDATE)
func (s *Service) loadSnapshot(ctx context.Context, businessID, dateKey string, items []scheduling.ChainItem) ([]domain.Booking, error) {
	seen := make(map[string]struct{})
	snapshot := make([]domain.Booking, 0)

	for _, item := range items {
		if item.WorkerID == nil {
			continue
		}
		if _, ok := seen[*item.WorkerID]; ok {
			continue
		}
		seen[*item.WorkerID] = struct{}{}

		bookings, err := s.bookingRepo.GetWorkerDay(ctx, domain.WorkerDayFilter{
			BusinessID: businessID,
			WorkerID:   *item.WorkerID,
			DateKey:    dateKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load bookings of worker %s: %v", ErrInternal, *item.WorkerID, err)
		}
		snapshot = append(snapshot, bookings...)
	}

	return snapshot, nil
}

func (s *Service) persist(ctx context.Context, req *Request, chain *domain.VisitChain, dateKey string) ([]domain.Booking, error) {
	created := make([]domain.Booking, 0, len(chain.Slots)*2)

	for _, slot := range chain.Slots {
		primary := &domain.Booking{
			ID:          s.ids.NewID(),
			BusinessID:  req.Schedule.BusinessID,
			WorkerID:    slot.WorkerID,
			ServiceID:   slot.ServiceID,
			ServiceName: slot.ServiceName,
			DateKey:     dateKey,
			StartAt:     slot.StartAt,
			EndAt:       slot.EndAt,
			Status:      domain.StatusConfirmed,
			Phase:       domain.PhaseMain,
			VisitID:     req.VisitID,
			ClientName:  req.Client.Name,
			ClientPhone: req.Client.Phone,
			Notes:       req.Client.Notes,
		}
		saved, err := s.bookingRepo.Create(ctx, primary)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		created = append(created, *saved)

		if slot.FollowUp == nil {
			continue
		}

		name := slot.FollowUp.Name
		if name == "" {
			name = slot.ServiceName
		}
		parentID := saved.ID
		followUp := &domain.Booking{
			ID:              s.ids.NewID(),
			BusinessID:      req.Schedule.BusinessID,
			WorkerID:        slot.WorkerID,
			ServiceID:       slot.ServiceID,
			ServiceName:     name,
			DateKey:         dateKey,
			StartAt:         slot.FollowUp.StartAt,
			EndAt:           slot.FollowUp.EndAt,
			Status:          domain.StatusConfirmed,
			Phase:           domain.PhaseFollowUp,
			ParentBookingID: &parentID,
			VisitID:         req.VisitID,
			ClientName:      req.Client.Name,
			ClientPhone:     req.Client.Phone,
			Notes:           req.Client.Notes,
		}
		saved, err = s.bookingRepo.Create(ctx, followUp)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create follow-up booking: %v", ErrInternal, err)
		}
		created = append(created, *saved)
	}

	return created, nil
}

// checkWorkingHours каждый блок (и повторная фаза) должен лежать внутри эффективного окна
// своего мастера; блок без мастера - внутри окна салона
func checkWorkingHours(chain *domain.VisitChain, schedule *domain.BusinessSchedule, workers scheduling.WorkerLookup, day time.Time) error {
	business, err := scheduling.ResolveBusinessWindow(schedule.WeeklyHours, schedule.ClosedDates, day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if business == nil {
		return fmt.Errorf("%w: business is closed on %s", ErrOutsideWorkingHours, scheduling.DateKey(day))
	}

	for _, slot := range chain.Slots {
		window := business
		if slot.WorkerID != nil {
			worker, _ := workers(*slot.WorkerID)
			ww, err := scheduling.ResolveWorkerWindow(worker, day)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			window = scheduling.EffectiveWindow(business, ww)
		}

		if !fits(window, day, slot.StartAt, slot.EndAt) {
			return fmt.Errorf("%w: service %s at %s", ErrOutsideWorkingHours, slot.ServiceID, slot.StartAt.Format(domain.TimeFormat))
		}
		if slot.FollowUp != nil && !fits(window, day, slot.FollowUp.StartAt, slot.FollowUp.EndAt) {
			return fmt.Errorf("%w: follow-up of service %s at %s", ErrOutsideWorkingHours, slot.ServiceID, slot.FollowUp.StartAt.Format(domain.TimeFormat))
		}
	}
	return nil
}

func fits(window *scheduling.Window, day, start, end time.Time) bool {
	startMin := scheduling.MinutesOf(day, start)
	return scheduling.FitsWindow(window, startMin, scheduling.MinutesOf(day, end)-startMin)
}
