package get_available_slots

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	getAvailableSlots "github.com/amitayhanson-cloud/salon-platform-sub000/internal/usecase/get_available_slots"
)

// SlotResponse свободное время и мастера, которые свободны
type SlotResponse struct {
	StartTime string   `json:"startTime"` // "10:00"
	WorkerIDs []string `json:"workerIds"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	BusinessID      string         `json:"businessId"`
	ServiceID       string         `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос use case из параметров URL
func ToUseCaseRequest(businessID, serviceID, dateStr, workerID string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}
	if workerID != "" {
		req.WorkerID = &workerID
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			WorkerIDs: s.WorkerIDs,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
