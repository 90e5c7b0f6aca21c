package business

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/domain"
	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetSchedule(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, timezone, slot_granularity, created_at, updated_at FROM businesses WHERE id = \\$1").
		WithArgs("biz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timezone", "slot_granularity", "created_at", "updated_at"}).
			AddRow("biz", "Asia/Jerusalem", 15, now, now))

	mock.ExpectQuery("FROM business_hours WHERE business_id = \\$1 ORDER BY weekday ASC").
		WithArgs("biz").
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "enabled", "start_time", "end_time"}).
			AddRow(0, true, "09:00", "18:00").
			AddRow(5, true, "09:00", "13:00").
			AddRow(6, false, "00:00", "00:00"))

	mock.ExpectQuery("FROM closed_dates WHERE business_id = \\$1").
		WithArgs("biz").
		WillReturnRows(sqlmock.NewRows([]string{"date_key"}).AddRow("2026-04-13"))

	schedule, err := repo.GetSchedule(context.Background(), "biz")
	require.NoError(t, err)

	assert.Equal(t, "biz", schedule.BusinessID)
	assert.Equal(t, 15, schedule.SlotGranularity)
	assert.Equal(t, "Asia/Jerusalem", schedule.Location().String())
	assert.Len(t, schedule.WeeklyHours, 3)
	assert.Equal(t, domain.DayHours{Enabled: true, Start: "09:00", End: "13:00"}, schedule.WeeklyHours[time.Friday])
	assert.False(t, schedule.WeeklyHours[time.Saturday].Enabled)
	assert.True(t, schedule.IsClosedOn("2026-04-13"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetScheduleNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM businesses").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSchedule(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestRepository_GetScheduleHoursError(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM businesses").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timezone", "slot_granularity", "created_at", "updated_at"}).
			AddRow("biz", "UTC", 15, now, now))
	mock.ExpectQuery("FROM business_hours").WillReturnError(sql.ErrConnDone)

	_, err := repo.GetSchedule(context.Background(), "biz")
	assert.ErrorIs(t, err, ErrExecQuery)
}
