package commit

import (
	"time"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
)

// Client данные клиента, записываемые в каждую бронь визита
type Client struct {
	Name  string
	Phone string
	Notes *string
}

// Request визит к записи
type Request struct {
	Schedule   *domain.BusinessSchedule
	Items      []scheduling.ChainItem
	VisitStart time.Time // в локации салона
	// VisitID общий идентификатор для визита из нескольких услуг; nil - не проставляется
	VisitID *string
	Client  Client

	// Replace брони, которые отменяются в той же транзакции (перенос).
	// При проверке пересечений они не учитываются.
	Replace            []domain.Booking
	CancellationReason *string
}

// Result сохраненный визит
type Result struct {
	Chain    *domain.VisitChain
	Bookings []domain.Booking // в порядке создания: фаза 1, затем ее фаза 2
}
