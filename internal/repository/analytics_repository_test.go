package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAnalyticsRepositoryTeacherWorkload(t *testing.T) {
	db, mock, cleanup := newAnalyticsMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"teacher_id", "teacher_name", "sessions"}).
		AddRow("t1", "Ada Lovelace", 8).
		AddRow("t2", "Charles Darwin", 5)
	mock.ExpectQuery("SELECT e.teacher_id, COALESCE\\(t.full_name, 'Unknown'\\) AS teacher_name, COUNT\\(\\*\\) AS sessions").
		WillReturnRows(rows)

	workloads, err := repo.TeacherWorkload(context.Background())
	require.NoError(t, err)
	require.Len(t, workloads, 2)
	assert.Equal(t, "Ada Lovelace", workloads[0].TeacherName)
	assert.Equal(t, 8, workloads[0].Sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryRoomUtilization(t *testing.T) {
	db, mock, cleanup := newAnalyticsMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"room_id", "room_name", "sessions"}).
		AddRow("r1", "101", 12)
	mock.ExpectQuery("SELECT e.room_id, COALESCE\\(r.name, 'Unknown'\\) AS room_name, COUNT\\(\\*\\) AS sessions").
		WillReturnRows(rows)

	utilization, err := repo.RoomUtilization(context.Background())
	require.NoError(t, err)
	require.Len(t, utilization, 1)
	assert.Equal(t, 12, utilization[0].Sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryPeriodLoad(t *testing.T) {
	db, mock, cleanup := newAnalyticsMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"start_time", "sessions"}).
		AddRow("08:00", 6).
		AddRow("09:00", 4)
	mock.ExpectQuery("SELECT COALESCE\\(ts.start_time, ''\\) AS start_time, COUNT\\(\\*\\) AS sessions").
		WillReturnRows(rows)

	loads, err := repo.PeriodLoad(context.Background())
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, "08:00", loads[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
