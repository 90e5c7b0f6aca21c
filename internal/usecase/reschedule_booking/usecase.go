package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	bookingRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/booking"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
)

// UseCase use case для переноса бронирования: отмена старых фаз и запись новых
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	catalogRepo  CatalogRepository
	committer    Committer
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	committer Committer,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
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

// Execute выполняет use case переноса бронирования.
// Старая бронь и связанная с ней фаза не участвуют в проверке пересечений
// и отменяются в той же транзакции, в которой создаются новые фазы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: business=%s, booking=%s, date=%s, time=%s",
		req.BusinessID, req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование и связанные фазы
	target, err := uc.bookingRepo.GetByID(ctx, req.BusinessID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !target.CanBeCancelled() {
		uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", target.ID, target.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotReschedule, target.Status)
	}

	linked, err := uc.bookingRepo.GetLinked(ctx, target)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get linked phases of booking id=%s: %v", target.ID, err)
		return nil, fmt.Errorf("%w: failed to get linked bookings: %v", ErrInternal, err)
	}

	primary, replace := phasesOf(target, linked)

	// 3. Получаем расписание салона и услугу
	schedule, err := uc.businessRepo.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("RescheduleBooking: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get schedule of business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	schedule.ApplyDefaults(uc.settings.DefaultTimezone, uc.settings.DefaultGranularity)

	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, primary.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleBooking: service id=%s not found", primary.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get service id=%s: %v", primary.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем новую дату и время в локации салона
	loc := schedule.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	now := uc.timeProvider.Now().In(loc)

	if err := validateDate(day, now, uc.settings.MaxAdvanceDays); err != nil {
		uc.logger.Warn("RescheduleBooking: invalid date %s: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	startAt, err := req.StartTime.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !startAt.After(now) {
		uc.logger.Warn("RescheduleBooking: start %s is in the past", startAt.Format(time.RFC3339))
		return nil, ErrSlotInPast
	}

	workerID := primary.WorkerID
	if req.WorkerID != nil {
		workerID = req.WorkerID
	}

	reason := req.Reason
	if reason == nil {
		reason = ptr.Ptr(DefaultReason)
	}

	// 5. Отменяем старые фазы и создаем новые в одной транзакции
	result, err := uc.committer.Commit(ctx, &commit.Request{
		Schedule: schedule,
		Items: []scheduling.ChainItem{{
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			WorkerID:        workerID,
			FollowUp:        service.FollowUp,
		}},
		VisitStart: startAt,
		VisitID:    primary.VisitID,
		Client: commit.Client{
			Name:  primary.ClientName,
			Phone: primary.ClientPhone,
			Notes: primary.Notes,
		},
		Replace:            replace,
		CancellationReason: reason,
	})
	if err != nil {
		if errors.Is(err, commit.ErrInternal) {
			uc.logger.Error("RescheduleBooking: failed to commit: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Warn("RescheduleBooking: reschedule rejected: %v", err)
		return nil, err
	}

	response := &Response{
		CancelledIDs: make([]string, 0, len(replace)),
		Booking:      result.Bookings[0],
	}
	for _, b := range replace {
		response.CancelledIDs = append(response.CancelledIDs, b.ID)
	}
	if len(result.Bookings) > 1 {
		response.FollowUp = &result.Bookings[1]
	}

	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s as id=%s",
		primary.ID, startAt.Format(time.RFC3339), response.Booking.ID)

	return response, nil
}

// phasesOf возвращает основную фазу и все подтвержденные фазы услуги, которые заменяются
func phasesOf(target *domain.Booking, linked []domain.Booking) (domain.Booking, []domain.Booking) {
	primary := *target
	replace := []domain.Booking{*target}

	for _, b := range linked {
		if b.ID == target.ID {
			continue
		}
		if b.Phase == domain.PhaseMain && target.Phase == domain.PhaseFollowUp {
			primary = b
		}
		if b.IsConfirmed() {
			replace = append(replace, b)
		}
	}
	return primary, replace
}
