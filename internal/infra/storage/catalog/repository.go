package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/dbmetrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var columns = []string{
	"id",
	"business_id",
	"name",
	"duration_minutes",
	"follow_up_name",
	"follow_up_duration_minutes",
	"follow_up_wait_minutes",
	"created_at",
	"updated_at",
}

// Repository каталог услуг салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу салона по ID
func (r *Repository) GetService(ctx context.Context, businessID, serviceID string) (*domain.ServiceDefinition, error) {
	services, err := r.GetServices(ctx, businessID, []string{serviceID})
	if err != nil {
		return nil, err
	}
	svc, ok := services[serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// GetServices получает услуги салона по списку ID. Отсутствующие ID в результат не попадают.
func (r *Repository) GetServices(ctx context.Context, businessID string, serviceIDs []string) (map[string]*domain.ServiceDefinition, error) {
	result := make(map[string]*domain.ServiceDefinition, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID, "id": serviceIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			svc                  domain.ServiceDefinition
			followUpName         sql.NullString
			followUpDuration     sql.NullInt64
			followUpWait         sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)
		err := rows.Scan(
			&svc.ID,
			&svc.BusinessID,
			&svc.Name,
			&svc.DurationMinutes,
			&followUpName,
			&followUpDuration,
			&followUpWait,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServices - scan service: %v", ErrScanRow, err)
		}

		// Повторная фаза с нулевой длительностью считается отсутствующей
		if followUpDuration.Valid && followUpDuration.Int64 > 0 {
			svc.FollowUp = &domain.FollowUp{
				Name:            followUpName.String,
				DurationMinutes: int(followUpDuration.Int64),
				WaitMinutes:     int(followUpWait.Int64),
			}
		}
		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time

		result[svc.ID] = &svc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServices - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}
