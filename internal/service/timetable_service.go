package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/edupoint/timetable-api/internal/engine"
	"github.com/edupoint/timetable-api/internal/models"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type timetableTeacherLister interface {
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

type timetableSubjectLister interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
}

type timetableRoomLister interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type timetableSlotLister interface {
	ListAll(ctx context.Context) ([]models.TimeSlot, error)
}

type timetableRepository interface {
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
	DeleteForGroupsTx(ctx context.Context, tx *sqlx.Tx, groups []string) error
	BulkCreateTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error
	ListDetailed(ctx context.Context) ([]models.TimetableEntryDetail, error)
	Count(ctx context.Context) (int, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type timetableGenerator interface {
	Generate(input engine.Input) (*engine.Result, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// GenerateTimetableRequest is the payload for a generation run. An
// empty ClassGroups regenerates the whole timetable; a non-empty one
// regenerates only the named groups and leaves the rest untouched.
type GenerateTimetableRequest struct {
	ClassGroups []string `json:"class_groups" validate:"omitempty,dive,required"`
}

// TimetableConfig tunes generation behaviour.
type TimetableConfig struct {
	MaxSubjects int
}

// GenerateTimetableResult summarizes a completed run.
type GenerateTimetableResult struct {
	TotalRequirements int                      `json:"total_requirements"`
	PlacedCount       int                      `json:"placed_count"`
	UnplacedCount     int                      `json:"unplaced_count"`
	Entries           []models.TimetableEntry  `json:"entries"`
	Unplaced          []models.UnplacedSession `json:"unplaced"`
}

// TimetableService orchestrates generation runs and timetable reads.
// A run loads the four entity lists in their prescribed order, hands
// them to the generator, then replaces the persisted timetable with
// the new assignments inside one transaction.
type TimetableService struct {
	teachers  timetableTeacherLister
	subjects  timetableSubjectLister
	rooms     timetableRoomLister
	slots     timetableSlotLister
	entries   timetableRepository
	generator timetableGenerator
	tx        txProvider
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableConfig
}

// NewTimetableService wires generation dependencies. Cache and metrics
// are optional; pass nil when the corresponding feature is disabled.
func NewTimetableService(
	teachers timetableTeacherLister,
	subjects timetableSubjectLister,
	rooms timetableRoomLister,
	slots timetableSlotLister,
	entries timetableRepository,
	generator timetableGenerator,
	tx txProvider,
	cache cacheInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		teachers:  teachers,
		subjects:  subjects,
		rooms:     rooms,
		slots:     slots,
		entries:   entries,
		generator: generator,
		tx:        tx,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate runs the full pipeline and persists the outcome. Unplaced
// sessions do not fail the run; they are reported back so operators can
// add rooms or timeslots and rerun.
func (s *TimetableService) Generate(ctx context.Context, req GenerateTimetableRequest) (*GenerateTimetableResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	input, err := s.loadInput(ctx, req.ClassGroups)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxSubjects > 0 && len(input.Subjects) > s.cfg.MaxSubjects {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("subject count %d exceeds the configured limit of %d", len(input.Subjects), s.cfg.MaxSubjects))
	}

	outcome, err := s.generator.Generate(*input)
	if err != nil {
		var invalid *engine.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, appErrors.Clone(appErrors.ErrInvalidInput, invalid.Error())
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "timetable generation failed")
	}

	entries := make([]models.TimetableEntry, 0, len(outcome.Assignments))
	for _, a := range outcome.Assignments {
		entries = append(entries, models.TimetableEntry{
			SubjectID:  a.SubjectID,
			TeacherID:  a.TeacherID,
			RoomID:     a.RoomID,
			TimeslotID: a.TimeslotID,
			ClassGroup: a.ClassGroup,
		})
	}

	if err := s.persist(ctx, req.ClassGroups, entries); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	s.metrics.RecordGenerationRun(len(outcome.Unplaced))

	unplaced := make([]models.UnplacedSession, 0, len(outcome.Unplaced))
	for _, u := range outcome.Unplaced {
		unplaced = append(unplaced, models.UnplacedSession{
			SubjectID:  u.SubjectID,
			TeacherID:  u.TeacherID,
			ClassGroup: u.ClassGroup,
			Ordinal:    u.Ordinal,
		})
	}

	result := &GenerateTimetableResult{
		TotalRequirements: len(entries) + len(unplaced),
		PlacedCount:       len(entries),
		UnplacedCount:     len(unplaced),
		Entries:           entries,
		Unplaced:          unplaced,
	}

	s.logger.Info("timetable generated",
		zap.Int("placed", result.PlacedCount),
		zap.Int("unplaced", result.UnplacedCount),
		zap.Strings("class_groups", req.ClassGroups))
	return result, nil
}

// List returns the persisted timetable in display order.
func (s *TimetableService) List(ctx context.Context) ([]models.TimetableEntryDetail, error) {
	entries, err := s.entries.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	return entries, nil
}

// Count returns the number of persisted assignments.
func (s *TimetableService) Count(ctx context.Context) (int, error) {
	count, err := s.entries.Count(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count timetable entries")
	}
	return count, nil
}

func (s *TimetableService) loadInput(ctx context.Context, classGroups []string) (*engine.Input, error) {
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	slots, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}
	return &engine.Input{
		Teachers:    teachers,
		Subjects:    subjects,
		Rooms:       rooms,
		Timeslots:   slots,
		ClassGroups: classGroups,
	}, nil
}

func (s *TimetableService) persist(ctx context.Context, classGroups []string, entries []models.TimetableEntry) error {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(classGroups) > 0 {
		err = s.entries.DeleteForGroupsTx(ctx, tx, classGroups)
	} else {
		err = s.entries.DeleteAllTx(ctx, tx)
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear timetable")
	}

	if err := s.entries.BulkCreateTx(ctx, tx, entries); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable")
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit timetable")
	}
	return nil
}

func (s *TimetableService) invalidateAnalytics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "analytics:*"); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}
