package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/models"
)

func newTeacherMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "email", "department", "available_slots", "created_at", "updated_at"}).
		AddRow("t1", "Ada Lovelace", nil, nil, pq.StringArray{}, time.Now(), time.Now())
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, email, department, available_slots, created_at, updated_at FROM teachers WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("SELECT id, full_name, email, department, available_slots, created_at, updated_at FROM teachers WHERE 1=1 AND").
		WithArgs("%ada%").
		WillReturnRows(teacherRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM teachers WHERE 1=1 AND`).
		WithArgs("%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{Search: "Ada"})
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListAllOrdersByCreation(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, email, department, available_slots, created_at, updated_at FROM teachers ORDER BY created_at, id")).
		WillReturnRows(teacherRows())

	teachers, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{FullName: "Ada Lovelace"}
	err := repo.Create(context.Background(), teacher)
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.False(t, teacher.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newTeacherMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("DELETE FROM teachers").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoRowsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
