package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupoint/timetable-api/internal/models"
	"github.com/edupoint/timetable-api/internal/repository"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

type subjectTeacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// CreateSubjectRequest represents payload for creating subjects. An
// empty class group falls back to the configured default.
type CreateSubjectRequest struct {
	Name            string  `json:"name" validate:"required"`
	Code            *string `json:"code" validate:"omitempty,max=50"`
	SessionsPerWeek int     `json:"sessions_per_week" validate:"required,min=1,max=50"`
	TeacherID       string  `json:"teacher_id" validate:"required"`
	ClassGroup      string  `json:"class_group" validate:"omitempty,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,min=0,max=480"`
}

// UpdateSubjectRequest represents payload for updating subjects.
type UpdateSubjectRequest struct {
	Name            string  `json:"name" validate:"required"`
	Code            *string `json:"code" validate:"omitempty,max=50"`
	SessionsPerWeek int     `json:"sessions_per_week" validate:"required,min=1,max=50"`
	TeacherID       string  `json:"teacher_id" validate:"required"`
	ClassGroup      string  `json:"class_group" validate:"omitempty,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,min=0,max=480"`
}

// SubjectConfig tunes subject defaults.
type SubjectConfig struct {
	DefaultClassGroup string
}

// SubjectService orchestrates subject operations. Referential integrity
// against teachers is enforced here, at the boundary, so the generation
// engine never has to care about dangling ids.
type SubjectService struct {
	repo      subjectRepository
	teachers  subjectTeacherReader
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SubjectConfig
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, teachers subjectTeacherReader, validate *validator.Validate, logger *zap.Logger, cfg SubjectConfig) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultClassGroup == "" {
		cfg.DefaultClassGroup = "Class A"
	}
	return &SubjectService{repo: repo, teachers: teachers, validator: validate, logger: logger, cfg: cfg}
}

// List returns subjects plus pagination data.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return subjects, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create registers a new subject after verifying the teacher reference.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:            strings.TrimSpace(req.Name),
		Code:            normalizeOptional(req.Code),
		SessionsPerWeek: req.SessionsPerWeek,
		TeacherID:       req.TeacherID,
		ClassGroup:      s.classGroupOrDefault(req.ClassGroup),
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update modifies an existing subject after verifying the teacher reference.
func (s *SubjectService) Update(ctx context.Context, id string, req UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	subject.Name = strings.TrimSpace(req.Name)
	subject.Code = normalizeOptional(req.Code)
	subject.SessionsPerWeek = req.SessionsPerWeek
	subject.TeacherID = req.TeacherID
	subject.ClassGroup = s.classGroupOrDefault(req.ClassGroup)
	subject.DurationMinutes = req.DurationMinutes

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return subject, nil
}

// Delete removes a subject record.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNoRowsDeleted {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

func (s *SubjectService) classGroupOrDefault(raw string) string {
	group := strings.TrimSpace(raw)
	if group == "" {
		return s.cfg.DefaultClassGroup
	}
	return group
}

func (s *SubjectService) ensureTeacherExists(ctx context.Context, teacherID string) error {
	if s.teachers == nil {
		return nil
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrReferenceNotFound, "teacher not found for subject")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify teacher reference")
	}
	return nil
}
