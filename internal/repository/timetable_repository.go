package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edupoint/timetable-api/internal/models"
)

// TimetableRepository persists generated timetable entries. Writes run
// inside a caller-owned transaction so clear-then-write is one logical
// unit per generation request.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// DeleteAllTx clears the whole timetable within the transaction.
func (r *TimetableRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_entries`); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}
	return nil
}

// DeleteForGroupsTx clears entries for the given class groups within
// the transaction.
func (r *TimetableRepository) DeleteForGroupsTx(ctx context.Context, tx *sqlx.Tx, groups []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_entries WHERE class_group = ANY($1)`, pq.Array(groups)); err != nil {
		return fmt.Errorf("clear timetable for groups: %w", err)
	}
	return nil
}

// BulkCreateTx inserts entries within the transaction, assigning fresh
// ids. Entry order is preserved.
func (r *TimetableRepository) BulkCreateTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].CreatedAt.IsZero() {
			entries[i].CreatedAt = now
		}
	}
	const query = `INSERT INTO timetable_entries (id, subject_id, teacher_id, room_id, timeslot_id, class_group, created_at)
		VALUES (:id, :subject_id, :teacher_id, :room_id, :timeslot_id, :class_group, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, entries); err != nil {
		return fmt.Errorf("bulk create timetable entries: %w", err)
	}
	return nil
}

// ListDetailed returns the denormalized timetable joined against
// subject, teacher, room and timeslot names, ordered for display.
func (r *TimetableRepository) ListDetailed(ctx context.Context) ([]models.TimetableEntryDetail, error) {
	const query = `SELECT e.id, e.subject_id, e.teacher_id, e.room_id, e.timeslot_id, e.class_group, e.created_at,
			COALESCE(s.name, 'Unknown') AS subject_name,
			COALESCE(t.full_name, 'Unknown') AS teacher_name,
			COALESCE(r.name, 'Unknown') AS room_name,
			COALESCE(ts.day, 'Unknown') AS day,
			COALESCE(ts.period, 0) AS period,
			COALESCE(ts.start_time, '') AS start_time,
			COALESCE(ts.end_time, '') AS end_time
		FROM timetable_entries e
		LEFT JOIN subjects s ON s.id = e.subject_id
		LEFT JOIN teachers t ON t.id = e.teacher_id
		LEFT JOIN rooms r ON r.id = e.room_id
		LEFT JOIN timeslots ts ON ts.id = e.timeslot_id
		ORDER BY CASE ts.day
			WHEN 'Monday' THEN 1
			WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4
			WHEN 'Friday' THEN 5
			WHEN 'Saturday' THEN 6
			WHEN 'Sunday' THEN 7
			ELSE 8 END, ts.period, e.class_group`
	var entries []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return entries, nil
}

// Count returns the number of persisted entries.
func (r *TimetableRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM timetable_entries`); err != nil {
		return 0, fmt.Errorf("count timetable entries: %w", err)
	}
	return count, nil
}
