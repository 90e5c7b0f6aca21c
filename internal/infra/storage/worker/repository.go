package worker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/dbmetrics"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/psqlbuilder"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/types"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий мастеров: услуги и недельная доступность
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBusiness загружает всех мастеров салона (включая неактивных) в порядке имени
func (r *Repository) ListByBusiness(ctx context.Context, businessID string) ([]domain.WorkerSchedule, error) {
	return r.load(ctx, "ListByBusiness", squirrel.Eq{"business_id": businessID})
}

func (r *Repository) load(ctx context.Context, op string, where squirrel.Eq) ([]domain.WorkerSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "active").
		From("workers").
		Where(where).
		OrderBy("name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	workers := make([]domain.WorkerSchedule, 0)
	index := make(map[string]int)
	for rows.Next() {
		var w domain.WorkerSchedule
		if err := rows.Scan(&w.ID, &w.BusinessID, &w.Name, &w.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %s - scan worker: %v", ErrScanRow, op, err)
		}
		w.Services = make(map[string]struct{})
		index[w.ID] = len(workers)
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}
	rows.Close()

	if len(workers) == 0 {
		return workers, nil
	}

	ids := make([]string, len(workers))
	for i := range workers {
		ids[i] = workers[i].ID
	}

	if err := r.attachServices(ctx, op, ids, workers, index); err != nil {
		return nil, err
	}
	if err := r.attachAvailability(ctx, op, ids, workers, index); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) attachServices(ctx context.Context, op string, ids []string, workers []domain.WorkerSchedule, index map[string]int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("worker_id", "service_id").
		From("worker_services").
		Where(squirrel.Eq{"worker_id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build services query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute services query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var workerID, serviceID string
		if err := rows.Scan(&workerID, &serviceID); err != nil {
			return fmt.Errorf("%w: %s - scan worker service: %v", ErrScanRow, op, err)
		}
		if i, ok := index[workerID]; ok {
			workers[i].Services[serviceID] = struct{}{}
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - services rows iteration: %v", ErrScanRow, op, err)
	}
	return nil
}

func (r *Repository) attachAvailability(ctx context.Context, op string, ids []string, workers []domain.WorkerSchedule, index map[string]int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("worker_id", "weekday", "open_time", "close_time").
		From("worker_availability").
		Where(squirrel.Eq{"worker_id": ids}).
		OrderBy("worker_id ASC", "weekday ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build availability query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute availability query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workerID        string
			weekday         int
			openAt, closeAt sql.NullString
		)
		if err := rows.Scan(&workerID, &weekday, &openAt, &closeAt); err != nil {
			return fmt.Errorf("%w: %s - scan availability: %v", ErrScanRow, op, err)
		}

		i, ok := index[workerID]
		if !ok {
			continue
		}
		workers[i].Availability = append(workers[i].Availability, domain.WorkerDay{
			Weekday: time.Weekday(weekday),
			Open:    nullTime(openAt),
			Close:   nullTime(closeAt),
		})
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - availability rows iteration: %v", ErrScanRow, op, err)
	}
	return nil
}

func nullTime(s sql.NullString) *types.TimeString {
	if !s.Valid {
		return nil
	}
	t := types.TimeString(s.String)
	return &t
}
