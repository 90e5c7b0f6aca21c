package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
)

// UseCase use case для создания бронирования одной услуги
type UseCase struct {
	businessRepo BusinessRepository
	catalogRepo  CatalogRepository
	committer    Committer
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%s, service=%s, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание салона
	schedule, err := uc.businessRepo.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get schedule of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	schedule.ApplyDefaults(uc.settings.DefaultTimezone, uc.settings.DefaultGranularity)

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем дату и время в локации салона
	loc := schedule.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	now := uc.timeProvider.Now().In(loc)

	if err := validateDate(day, now, uc.settings.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: invalid date %s: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	startAt, err := req.StartTime.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !startAt.After(now) {
		uc.logger.Warn("CreateBooking: start %s is in the past", startAt.Format(time.RFC3339))
		return nil, ErrSlotInPast
	}

	// 5. Перепроверяем и сохраняем фазы в одной транзакции
	result, err := uc.committer.Commit(ctx, &commit.Request{
		Schedule: schedule,
		Items: []scheduling.ChainItem{{
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			WorkerID:        req.WorkerID,
			FollowUp:        service.FollowUp,
		}},
		VisitStart: startAt,
		Client: commit.Client{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Notes: req.Notes,
		},
	})
	if err != nil {
		if errors.Is(err, commit.ErrInternal) {
			uc.logger.Error("CreateBooking: failed to commit booking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: booking rejected: %v", err)
		return nil, err
	}

	response := &Response{Booking: result.Bookings[0]}
	if len(result.Bookings) > 1 {
		response.FollowUp = &result.Bookings[1]
	}

	uc.logger.Info("CreateBooking: booking id=%s created for %s-%s",
		response.Booking.ID, response.Booking.StartAt.Format(domain.TimeFormat), response.Booking.EndAt.Format(domain.TimeFormat))

	return response, nil
}
