package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/dbmetrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"business_id",
	"worker_id",
	"service_id",
	"service_name",
	"date_key",
	"start_at",
	"end_at",
	"status",
	"phase",
	"parent_booking_id",
	"visit_id",
	"client_name",
	"client_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Идентификатор генерирует вызывающий код.
// Если в контексте есть активная транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"business_id",
			"worker_id",
			"service_id",
			"service_name",
			"date_key",
			"start_at",
			"end_at",
			"status",
			"phase",
			"parent_booking_id",
			"visit_id",
			"client_name",
			"client_phone",
			"notes",
		).
		Values(
			booking.ID,
			booking.BusinessID,
			booking.WorkerID,
			booking.ServiceID,
			booking.ServiceName,
			booking.DateKey,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.Phase,
			booking.ParentBookingID,
			booking.VisitID,
			booking.ClientName,
			booking.ClientPhone,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование салона по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWorkerDay получает бронирования мастера за день, отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE) до ее завершения.
func (r *Repository) GetWorkerDay(ctx context.Context, filter domain.WorkerDayFilter) ([]domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"business_id": filter.BusinessID,
			"worker_id":   filter.WorkerID,
			"date_key":    filter.DateKey,
		})

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	return r.list(ctx, "GetWorkerDay", selectBuilder.OrderBy("start_at ASC"))
}

// GetBusinessDay получает подтвержденные бронирования всех мастеров салона за день
func (r *Repository) GetBusinessDay(ctx context.Context, businessID, dateKey string) ([]domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"business_id": businessID,
			"date_key":    dateKey,
			"status":      domain.StatusConfirmed,
		}).
		OrderBy("start_at ASC")

	return r.list(ctx, "GetBusinessDay", selectBuilder)
}

// GetLinked получает фазы, связанные с бронированием через parent_booking_id (в обе стороны)
func (r *Repository) GetLinked(ctx context.Context, booking *domain.Booking) ([]domain.Booking, error) {
	linked := squirrel.Or{squirrel.Eq{"parent_booking_id": booking.ID}}
	if booking.ParentBookingID != nil {
		linked = append(linked, squirrel.Eq{"id": *booking.ParentBookingID})
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"business_id": booking.BusinessID}).
		Where(linked).
		OrderBy("start_at ASC")

	return r.list(ctx, "GetLinked", selectBuilder)
}

// CancelMany отменяет несколько бронирований; уже отмененные пропускаются.
// Возвращает количество отмененных строк.
func (r *Repository) CancelMany(ctx context.Context, businessID string, ids []string, reason *string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)
	now := time.Now().UTC()

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"business_id": businessID, "id": ids, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelMany - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelMany - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelMany - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// В транзакции записи блокируем, чтобы параллельная запись не проскочила между проверкой и вставкой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		b                             domain.Booking
		workerID, parentID, visitID   sql.NullString
		notes, cancellationReason     sql.NullString
		cancelledAt, createdAt, updAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BusinessID,
		&workerID,
		&b.ServiceID,
		&b.ServiceName,
		&b.DateKey,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.Phase,
		&parentID,
		&visitID,
		&b.ClientName,
		&b.ClientPhone,
		&notes,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updAt,
	)
	if err != nil {
		return nil, err
	}

	b.WorkerID = nullString(workerID)
	b.ParentBookingID = nullString(parentID)
	b.VisitID = nullString(visitID)
	b.Notes = nullString(notes)
	b.CancellationReason = nullString(cancellationReason)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updAt.Time

	return &b, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
