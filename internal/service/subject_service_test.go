package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/models"
	"github.com/edupoint/timetable-api/internal/repository"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type subjectRepoStub struct {
	subjects  map[string]*models.Subject
	created   *models.Subject
	deleteErr error
}

func (s *subjectRepoStub) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	var out []models.Subject
	for _, subject := range s.subjects {
		out = append(out, *subject)
	}
	return out, len(out), nil
}

func (s *subjectRepoStub) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	subject, ok := s.subjects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return subject, nil
}

func (s *subjectRepoStub) Create(ctx context.Context, subject *models.Subject) error {
	s.created = subject
	return nil
}

func (s *subjectRepoStub) Update(ctx context.Context, subject *models.Subject) error {
	s.subjects[subject.ID] = subject
	return nil
}

func (s *subjectRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

type teacherReaderStub struct {
	teachers map[string]*models.Teacher
}

func (s teacherReaderStub) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return teacher, nil
}

func newSubjectServiceFixture(repo *subjectRepoStub, teachers teacherReaderStub) *SubjectService {
	return NewSubjectService(repo, teachers, nil, nil, SubjectConfig{})
}

func TestSubjectServiceCreateSuccess(t *testing.T) {
	repo := &subjectRepoStub{subjects: map[string]*models.Subject{}}
	svc := newSubjectServiceFixture(repo, teacherReaderStub{
		teachers: map[string]*models.Teacher{"teacher-1": {ID: "teacher-1", FullName: "Ada Lovelace"}},
	})

	subject, err := svc.Create(context.Background(), CreateSubjectRequest{
		Name:            "Mathematics",
		SessionsPerWeek: 4,
		TeacherID:       "teacher-1",
		ClassGroup:      "Class A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", subject.Name)
	assert.Equal(t, 4, subject.SessionsPerWeek)
	require.NotNil(t, repo.created)
	assert.Equal(t, "teacher-1", repo.created.TeacherID)
}

func TestSubjectServiceCreateUnknownTeacher(t *testing.T) {
	repo := &subjectRepoStub{subjects: map[string]*models.Subject{}}
	svc := newSubjectServiceFixture(repo, teacherReaderStub{teachers: map[string]*models.Teacher{}})

	_, err := svc.Create(context.Background(), CreateSubjectRequest{
		Name:            "Mathematics",
		SessionsPerWeek: 4,
		TeacherID:       "ghost",
		ClassGroup:      "Class A",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReferenceNotFound.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestSubjectServiceCreateValidation(t *testing.T) {
	repo := &subjectRepoStub{subjects: map[string]*models.Subject{}}
	svc := newSubjectServiceFixture(repo, teacherReaderStub{teachers: map[string]*models.Teacher{}})

	_, err := svc.Create(context.Background(), CreateSubjectRequest{Name: "Mathematics"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceGetNotFound(t *testing.T) {
	repo := &subjectRepoStub{subjects: map[string]*models.Subject{}}
	svc := newSubjectServiceFixture(repo, teacherReaderStub{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceDeleteNotFound(t *testing.T) {
	repo := &subjectRepoStub{subjects: map[string]*models.Subject{}, deleteErr: repository.ErrNoRowsDeleted}
	svc := newSubjectServiceFixture(repo, teacherReaderStub{})

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
