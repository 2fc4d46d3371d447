package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupoint/timetable-api/internal/models"
)

// AnalyticsRepository aggregates timetable entries for reporting. Pure
// read-side queries over generator output; nothing here influences
// generation.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs an AnalyticsRepository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// TeacherWorkload counts sessions per teacher, busiest first.
func (r *AnalyticsRepository) TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error) {
	const query = `SELECT e.teacher_id, COALESCE(t.full_name, 'Unknown') AS teacher_name, COUNT(*) AS sessions
		FROM timetable_entries e
		LEFT JOIN teachers t ON t.id = e.teacher_id
		GROUP BY e.teacher_id, t.full_name
		ORDER BY sessions DESC, teacher_name`
	var workloads []models.TeacherWorkload
	if err := r.db.SelectContext(ctx, &workloads, query); err != nil {
		return nil, fmt.Errorf("teacher workload: %w", err)
	}
	return workloads, nil
}

// RoomUtilization counts sessions per room, most used first.
func (r *AnalyticsRepository) RoomUtilization(ctx context.Context) ([]models.RoomUtilization, error) {
	const query = `SELECT e.room_id, COALESCE(r.name, 'Unknown') AS room_name, COUNT(*) AS sessions
		FROM timetable_entries e
		LEFT JOIN rooms r ON r.id = e.room_id
		GROUP BY e.room_id, r.name
		ORDER BY sessions DESC, room_name`
	var utilization []models.RoomUtilization
	if err := r.db.SelectContext(ctx, &utilization, query); err != nil {
		return nil, fmt.Errorf("room utilization: %w", err)
	}
	return utilization, nil
}

// PeriodLoad counts sessions per timeslot start time for peak-hour
// reporting.
func (r *AnalyticsRepository) PeriodLoad(ctx context.Context) ([]models.PeriodLoad, error) {
	const query = `SELECT COALESCE(ts.start_time, '') AS start_time, COUNT(*) AS sessions
		FROM timetable_entries e
		LEFT JOIN timeslots ts ON ts.id = e.timeslot_id
		GROUP BY ts.start_time
		ORDER BY sessions DESC, start_time`
	var loads []models.PeriodLoad
	if err := r.db.SelectContext(ctx, &loads, query); err != nil {
		return nil, fmt.Errorf("period load: %w", err)
	}
	return loads, nil
}
