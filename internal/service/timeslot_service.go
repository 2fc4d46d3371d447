package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupoint/timetable-api/internal/models"
	"github.com/edupoint/timetable-api/internal/repository"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type timeSlotRepository interface {
	List(ctx context.Context, filter models.TimeSlotFilter) ([]models.TimeSlot, int, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, slot *models.TimeSlot) error
	Delete(ctx context.Context, id string) error
}

// CreateTimeSlotRequest represents payload for creating timeslots.
type CreateTimeSlotRequest struct {
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Period    int    `json:"period" validate:"required,min=1,max=20"`
	StartTime string `json:"start_time" validate:"omitempty,len=5"`
	EndTime   string `json:"end_time" validate:"omitempty,len=5"`
}

// UpdateTimeSlotRequest represents payload for updating timeslots.
type UpdateTimeSlotRequest = CreateTimeSlotRequest

// TimeSlotService orchestrates timeslot operations.
type TimeSlotService struct {
	repo      timeSlotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService constructs a TimeSlotService.
func NewTimeSlotService(repo timeSlotRepository, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{repo: repo, validator: validate, logger: logger}
}

// List returns timeslots plus pagination data.
func (s *TimeSlotService) List(ctx context.Context, filter models.TimeSlotFilter) ([]models.TimeSlot, *models.Pagination, error) {
	slots, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timeslots")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return slots, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a timeslot by id.
func (s *TimeSlotService) Get(ctx context.Context, id string) (*models.TimeSlot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timeslot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslot")
	}
	return slot, nil
}

// Create registers a new timeslot record.
func (s *TimeSlotService) Create(ctx context.Context, req CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeslot payload")
	}

	slot := &models.TimeSlot{
		Day:       strings.TrimSpace(req.Day),
		Period:    req.Period,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
	}
	slot.Label = timeslotLabel(slot)

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timeslot")
	}
	return slot, nil
}

// Update modifies an existing timeslot.
func (s *TimeSlotService) Update(ctx context.Context, id string, req UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeslot payload")
	}

	slot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slot.Day = strings.TrimSpace(req.Day)
	slot.Period = req.Period
	slot.StartTime = strings.TrimSpace(req.StartTime)
	slot.EndTime = strings.TrimSpace(req.EndTime)
	slot.Label = timeslotLabel(slot)

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timeslot")
	}
	return slot, nil
}

// Delete removes a timeslot record.
func (s *TimeSlotService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNoRowsDeleted {
			return appErrors.Clone(appErrors.ErrNotFound, "timeslot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timeslot")
	}
	return nil
}

func timeslotLabel(slot *models.TimeSlot) string {
	if slot.StartTime != "" && slot.EndTime != "" {
		return fmt.Sprintf("%s P%d (%s-%s)", slot.Day, slot.Period, slot.StartTime, slot.EndTime)
	}
	return fmt.Sprintf("%s P%d", slot.Day, slot.Period)
}
