package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/engine"
	"github.com/edupoint/timetable-api/internal/models"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type teacherListerStub struct {
	teachers []models.Teacher
	err      error
}

func (s teacherListerStub) ListAll(ctx context.Context) ([]models.Teacher, error) {
	return s.teachers, s.err
}

type subjectListerStub struct {
	subjects []models.Subject
}

func (s subjectListerStub) ListAll(ctx context.Context) ([]models.Subject, error) {
	return s.subjects, nil
}

type roomListerStub struct {
	rooms []models.Room
}

func (s roomListerStub) ListAll(ctx context.Context) ([]models.Room, error) {
	return s.rooms, nil
}

type slotListerStub struct {
	slots []models.TimeSlot
}

func (s slotListerStub) ListAll(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots, nil
}

type timetableRepoStub struct {
	deletedAll    bool
	deletedGroups []string
	created       []models.TimetableEntry
	detailed      []models.TimetableEntryDetail
	count         int
}

func (s *timetableRepoStub) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	s.deletedAll = true
	return nil
}

func (s *timetableRepoStub) DeleteForGroupsTx(ctx context.Context, tx *sqlx.Tx, groups []string) error {
	s.deletedGroups = groups
	return nil
}

func (s *timetableRepoStub) BulkCreateTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error {
	s.created = entries
	return nil
}

func (s *timetableRepoStub) ListDetailed(ctx context.Context) ([]models.TimetableEntryDetail, error) {
	return s.detailed, nil
}

func (s *timetableRepoStub) Count(ctx context.Context) (int, error) {
	return s.count, nil
}

type txProviderMock struct {
	db *sqlx.DB
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb}, mock
}

type timetableFixtureConfig struct {
	teachers []models.Teacher
	subjects []models.Subject
	rooms    []models.Room
	slots    []models.TimeSlot
}

func defaultTimetableFixture() timetableFixtureConfig {
	return timetableFixtureConfig{
		teachers: []models.Teacher{{ID: "teacher-1", FullName: "Ada Lovelace"}},
		subjects: []models.Subject{
			{ID: "math", Name: "Mathematics", SessionsPerWeek: 2, TeacherID: "teacher-1", ClassGroup: "Class A"},
		},
		rooms: []models.Room{{ID: "room-1", Name: "101"}},
		slots: []models.TimeSlot{
			{ID: "mon-1", Day: "Monday", Period: 1},
			{ID: "mon-2", Day: "Monday", Period: 2},
		},
	}
}

func newTimetableServiceFixture(t *testing.T, cfg timetableFixtureConfig, repo *timetableRepoStub) (*TimetableService, sqlmock.Sqlmock) {
	tx, mock := newTxProviderMock(t)
	svc := NewTimetableService(
		teacherListerStub{teachers: cfg.teachers},
		subjectListerStub{subjects: cfg.subjects},
		roomListerStub{rooms: cfg.rooms},
		slotListerStub{slots: cfg.slots},
		repo,
		engine.NewGenerator(),
		tx,
		nil,
		nil,
		nil,
		nil,
		TimetableConfig{},
	)
	return svc, mock
}

func TestTimetableServiceGenerateSuccess(t *testing.T) {
	repo := &timetableRepoStub{}
	svc, mock := newTimetableServiceFixture(t, defaultTimetableFixture(), repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Generate(context.Background(), GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.PlacedCount)
	assert.Equal(t, 0, result.UnplacedCount)
	assert.Equal(t, 2, result.TotalRequirements)
	assert.True(t, repo.deletedAll)
	assert.Nil(t, repo.deletedGroups)
	assert.Len(t, repo.created, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateScopedClearsOnlyGroups(t *testing.T) {
	cfg := defaultTimetableFixture()
	cfg.subjects = append(cfg.subjects, models.Subject{
		ID: "bio", Name: "Biology", SessionsPerWeek: 1, TeacherID: "teacher-1", ClassGroup: "Class B",
	})
	repo := &timetableRepoStub{}
	svc, mock := newTimetableServiceFixture(t, cfg, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Generate(context.Background(), GenerateTimetableRequest{ClassGroups: []string{"Class B"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.PlacedCount)
	assert.False(t, repo.deletedAll)
	assert.Equal(t, []string{"Class B"}, repo.deletedGroups)
	for _, entry := range repo.created {
		assert.Equal(t, "Class B", entry.ClassGroup)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateReportsUnplaced(t *testing.T) {
	cfg := defaultTimetableFixture()
	cfg.subjects = []models.Subject{
		{ID: "math", Name: "Mathematics", SessionsPerWeek: 3, TeacherID: "teacher-1", ClassGroup: "Class A"},
	}
	repo := &timetableRepoStub{}
	svc, mock := newTimetableServiceFixture(t, cfg, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Generate(context.Background(), GenerateTimetableRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.PlacedCount)
	assert.Equal(t, 1, result.UnplacedCount)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "math", result.Unplaced[0].SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateEmptyEntities(t *testing.T) {
	cfg := defaultTimetableFixture()
	cfg.rooms = nil
	repo := &timetableRepoStub{}
	svc, _ := newTimetableServiceFixture(t, cfg, repo)

	_, err := svc.Generate(context.Background(), GenerateTimetableRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidInput.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "rooms")
	assert.False(t, repo.deletedAll)
	assert.Empty(t, repo.created)
}

func TestTimetableServiceGenerateLoadFailure(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewTimetableService(
		teacherListerStub{err: errors.New("connection refused")},
		subjectListerStub{},
		roomListerStub{},
		slotListerStub{},
		&timetableRepoStub{},
		engine.NewGenerator(),
		tx,
		nil,
		nil,
		nil,
		nil,
		TimetableConfig{},
	)

	_, err := svc.Generate(context.Background(), GenerateTimetableRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceList(t *testing.T) {
	repo := &timetableRepoStub{
		detailed: []models.TimetableEntryDetail{
			{TimetableEntry: models.TimetableEntry{ID: "e1"}, SubjectName: "Mathematics", Day: "Monday", Period: 1},
		},
	}
	svc, _ := newTimetableServiceFixture(t, defaultTimetableFixture(), repo)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Mathematics", entries[0].SubjectName)
}
