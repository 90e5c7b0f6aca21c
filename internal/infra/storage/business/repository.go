package business

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

// Repository репозиторий расписания салона: часы работы, закрытые даты, шаг слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSchedule загружает расписание салона целиком
func (r *Repository) GetSchedule(ctx context.Context, businessID string) (*domain.BusinessSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"timezone",
		"slot_granularity",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var (
		schedule             domain.BusinessSchedule
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.BusinessID,
		&schedule.Timezone,
		&schedule.SlotGranularity,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - scan business: %v", ErrScanRow, err)
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if schedule.WeeklyHours, err = r.getWeeklyHours(ctx, businessID); err != nil {
		return nil, err
	}
	if schedule.ClosedDates, err = r.getClosedDates(ctx, businessID); err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *Repository) getWeeklyHours(ctx context.Context, businessID string) (domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "enabled", "start_time", "end_time").
		From("business_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(domain.WeeklyHours, 7)
	for rows.Next() {
		var (
			weekday    int
			day        domain.DayHours
			start, end string
		)
		if err := rows.Scan(&weekday, &day.Enabled, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyHours - scan hours: %v", ErrScanRow, err)
		}
		day.Start = types.TimeString(start)
		day.End = types.TimeString(end)
		hours[time.Weekday(weekday)] = day
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - rows iteration: %v", ErrScanRow, err)
	}

	return hours, nil
}

func (r *Repository) getClosedDates(ctx context.Context, businessID string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date_key").
		From("closed_dates").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("date_key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getClosedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getClosedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: getClosedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getClosedDates - rows iteration: %v", ErrScanRow, err)
	}

	return dates, nil
}
