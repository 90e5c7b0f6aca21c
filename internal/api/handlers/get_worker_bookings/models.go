package get_worker_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(businessID, workerID, dateStr, includeCancelledStr string) (*models.GetWorkerBookingsRequest, error) {
	if _, err := time.Parse(domain.DateFormat, dateStr); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &models.GetWorkerBookingsRequest{
		BusinessID: businessID,
		WorkerID:   workerID,
		Date:       dateStr,
	}

	// По умолчанию только подтвержденные
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
