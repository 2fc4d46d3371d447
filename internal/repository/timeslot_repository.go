package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupoint/timetable-api/internal/models"
)

// TimeSlotRepository handles persistence for timeslots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository creates a new repository instance.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// List returns timeslots matching filters with pagination metadata.
func (r *TimeSlotRepository) List(ctx context.Context, filter models.TimeSlotFilter) ([]models.TimeSlot, int, error) {
	base := "FROM timeslots WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"day":        true,
		"period":     true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, day, period, start_time, end_time, label, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timeslots: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count timeslots: %w", err)
	}

	return slots, total, nil
}

// ListAll returns every timeslot in weekday-then-period order. The order
// fixes the generator's timeslot enumeration, so it is prescribed here
// rather than left to whatever the table happens to return.
func (r *TimeSlotRepository) ListAll(ctx context.Context) ([]models.TimeSlot, error) {
	const query = `SELECT id, day, period, start_time, end_time, label, created_at, updated_at FROM timeslots
		ORDER BY CASE day
			WHEN 'Monday' THEN 1
			WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4
			WHEN 'Friday' THEN 5
			WHEN 'Saturday' THEN 6
			WHEN 'Sunday' THEN 7
			ELSE 8 END, period, id`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list all timeslots: %w", err)
	}
	return slots, nil
}

// Count returns the total number of timeslots.
func (r *TimeSlotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM timeslots`); err != nil {
		return 0, fmt.Errorf("count timeslots: %w", err)
	}
	return count, nil
}

// FindByID returns a timeslot by id.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, day, period, start_time, end_time, label, created_at, updated_at FROM timeslots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create persists a new timeslot.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO timeslots (id, day, period, start_time, end_time, label, created_at, updated_at)
		VALUES (:id, :day, :period, :start_time, :end_time, :label, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create timeslot: %w", err)
	}
	return nil
}

// Update modifies a timeslot.
func (r *TimeSlotRepository) Update(ctx context.Context, slot *models.TimeSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timeslots SET day = :day, period = :period, start_time = :start_time, end_time = :end_time, label = :label, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update timeslot: %w", err)
	}
	return nil
}

// Delete removes a timeslot record.
func (r *TimeSlotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM timeslots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timeslot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete timeslot rows: %w", err)
	}
	if affected == 0 {
		return ErrNoRowsDeleted
	}
	return nil
}
