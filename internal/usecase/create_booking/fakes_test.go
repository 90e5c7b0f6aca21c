package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	businessRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/business"
	catalogRepo "github.com/amitayhanson-cloud/salon-platform-sub000/internal/infra/storage/catalog"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/ptr"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

type fakeBusiness struct {
	schedule *domain.BusinessSchedule
}

func (f *fakeBusiness) GetSchedule(_ context.Context, businessID string) (*domain.BusinessSchedule, error) {
	if f.schedule == nil || f.schedule.BusinessID != businessID {
		return nil, businessRepo.ErrBusinessNotFound
	}
	s := *f.schedule
	return &s, nil
}

type fakeCatalog struct {
	services map[string]*domain.ServiceDefinition
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID string) (*domain.ServiceDefinition, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

// fakeCommitter запоминает запрос и раскладывает визит движком без проверки пересечений
type fakeCommitter struct {
	requests []*commit.Request
	err      error
}

func (f *fakeCommitter) Commit(_ context.Context, req *commit.Request) (*commit.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}

	chain, err := scheduling.NewEngine(nil).BuildChain(scheduling.ChainRequest{Items: req.Items, VisitStart: req.VisitStart})
	if err != nil {
		return nil, err
	}

	result := &commit.Result{Chain: chain}
	for i, slot := range chain.Slots {
		id := fmt.Sprintf("b%d", i+1)
		result.Bookings = append(result.Bookings, domain.Booking{
			ID: id, WorkerID: slot.WorkerID, ServiceID: slot.ServiceID,
			StartAt: slot.StartAt, EndAt: slot.EndAt, Status: domain.StatusConfirmed, Phase: domain.PhaseMain,
		})
		if slot.FollowUp != nil {
			result.Bookings = append(result.Bookings, domain.Booking{
				ID: id + "-2", WorkerID: slot.WorkerID, ServiceID: slot.ServiceID, ParentBookingID: ptr.Ptr(id),
				StartAt: slot.FollowUp.StartAt, EndAt: slot.FollowUp.EndAt, Status: domain.StatusConfirmed, Phase: domain.PhaseFollowUp,
			})
		}
	}
	return result, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func everyDay(start, end string) domain.WeeklyHours {
	hours := make(domain.WeeklyHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = domain.DayHours{Enabled: true, Start: types.TimeString(start), End: types.TimeString(end)}
	}
	return hours
}
