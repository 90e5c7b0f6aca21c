package book_visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
)

// UseCase use case для записи визита из нескольких услуг подряд
type UseCase struct {
	businessRepo BusinessRepository
	catalogRepo  CatalogRepository
	committer    Committer
	ids          IDGenerator
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	committer Committer,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		catalogRepo:  catalogRepo,
		committer:    committer,
		ids:          commit.UUIDGenerator{},
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

// WithIDGenerator подменяет генератор идентификатора визита (для тестов)
func (uc *UseCase) WithIDGenerator(ids IDGenerator) *UseCase {
	uc.ids = ids
	return uc
}

// Execute выполняет use case записи визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookVisit: business=%s, date=%s, time=%s, services=%d",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookVisit: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание салона
	schedule, err := uc.businessRepo.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("BookVisit: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("BookVisit: failed to get schedule of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	schedule.ApplyDefaults(uc.settings.DefaultTimezone, uc.settings.DefaultGranularity)

	// 3. Получаем услуги визита
	items, err := uc.chainItems(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем дату и время в локации салона
	loc := schedule.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	now := uc.timeProvider.Now().In(loc)

	if err := validateDate(day, now, uc.settings.MaxAdvanceDays); err != nil {
		uc.logger.Warn("BookVisit: invalid date %s: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	visitStart, err := req.StartTime.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !visitStart.After(now) {
		uc.logger.Warn("BookVisit: start %s is in the past", visitStart.Format(time.RFC3339))
		return nil, ErrSlotInPast
	}

	// 5. Собираем визит на свежем снимке и сохраняем все блоки под одним visitId
	visitID := uc.ids.NewID()
	result, err := uc.committer.Commit(ctx, &commit.Request{
		Schedule:   schedule,
		Items:      items,
		VisitStart: visitStart,
		VisitID:    &visitID,
		Client: commit.Client{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Notes: req.Notes,
		},
	})
	if err != nil {
		if errors.Is(err, commit.ErrInternal) {
			uc.logger.Error("BookVisit: failed to commit visit: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Warn("BookVisit: visit rejected: %v", err)
		return nil, err
	}

	uc.logger.Info("BookVisit: visit id=%s created with %d bookings", visitID, len(result.Bookings))

	return &Response{
		VisitID:  visitID,
		StartAt:  result.Chain.StartAt(),
		EndAt:    result.Chain.EndAt(),
		Bookings: result.Bookings,
	}, nil
}

// chainItems загружает услуги одним запросом и строит элементы визита в порядке запроса
func (uc *UseCase) chainItems(ctx context.Context, req *Request) ([]scheduling.ChainItem, error) {
	ids := make([]string, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ServiceID]; ok {
			continue
		}
		seen[item.ServiceID] = struct{}{}
		ids = append(ids, item.ServiceID)
	}

	services, err := uc.catalogRepo.GetServices(ctx, req.BusinessID, ids)
	if err != nil {
		uc.logger.Error("BookVisit: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	items := make([]scheduling.ChainItem, 0, len(req.Items))
	for _, item := range req.Items {
		service, ok := services[item.ServiceID]
		if !ok {
			uc.logger.Warn("BookVisit: service id=%s not found", item.ServiceID)
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, item.ServiceID)
		}
		items = append(items, scheduling.ChainItem{
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			WorkerID:        item.WorkerID,
			FollowUp:        service.FollowUp,
		})
	}
	return items, nil
}
