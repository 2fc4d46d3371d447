package models

import "time"

// Subject represents an academic subject taught to one class group by
// one teacher a fixed number of times per week.
type Subject struct {
	ID              string    `db:"id" json:"id"`
	Code            *string   `db:"code" json:"code,omitempty"`
	Name            string    `db:"name" json:"name"`
	SessionsPerWeek int       `db:"sessions_per_week" json:"sessions_per_week"`
	TeacherID       string    `db:"teacher_id" json:"teacher_id"`
	ClassGroup      string    `db:"class_group" json:"class_group"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	TeacherID  string
	ClassGroup string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
