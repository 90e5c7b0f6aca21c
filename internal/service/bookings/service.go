package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	bookingRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/booking"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     *metrics.Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. m может быть nil.
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     m,
		logger:      logger,
	}
}

// GetByID получает бронирование салона по ID
func (s *Service) GetByID(ctx context.Context, businessID, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s of business=%s", id, businessID)

	booking, err := s.bookingRepo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetWorkerBookings получает бронирования мастера за день по времени начала.
// По умолчанию только подтвержденные.
func (s *Service) GetWorkerBookings(ctx context.Context, req *models.GetWorkerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetWorkerBookings: business=%s, worker=%s, date=%s, includeCancelled=%t",
		req.BusinessID, req.WorkerID, req.Date, req.IncludeCancelled)

	if strings.TrimSpace(req.WorkerID) == "" {
		return nil, fmt.Errorf("%w: workerId is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		s.logger.Warn("GetWorkerBookings: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWorkerDay(ctx, domain.WorkerDayFilter{
		BusinessID:       req.BusinessID,
		WorkerID:         req.WorkerID,
		DateKey:          req.Date,
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("GetWorkerBookings: repository error for worker=%s: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: GetWorkerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWorkerBookings: fetched %d bookings for worker=%s", len(bookings), req.WorkerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel мягко отменяет бронирование. Связи между фазами не меняются;
// при Cascade связанная фаза отменяется в той же транзакции.
func (s *Service) Cancel(ctx context.Context, businessID, bookingID string, req *models.CancelBookingRequest) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s of business=%s, cascade=%t", bookingID, businessID, req.Cascade)

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var ids []string

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, businessID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		ids = []string{booking.ID}
		if req.Cascade {
			linked, err := s.bookingRepo.GetLinked(txCtx, booking)
			if err != nil {
				return fmt.Errorf("%w: Cancel - failed to get linked bookings: %v", ErrInternal, err)
			}
			for _, b := range linked {
				if b.IsConfirmed() && b.ID != booking.ID {
					ids = append(ids, b.ID)
				}
			}
		}

		if _, err := s.bookingRepo.CancelMany(txCtx, businessID, ids, req.Reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrCannotCancel) {
			return nil, err
		}
		s.logger.Error("Cancel: failed to cancel booking id=%s: %v", bookingID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelled.Add(float64(len(ids)))
	}

	s.logger.Info("Cancel: cancelled bookings %v", ids)
	return &models.CancelResponse{CancelledIDs: ids}, nil
}
