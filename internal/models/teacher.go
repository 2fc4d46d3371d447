package models

import (
	"time"

	"github.com/lib/pq"
)

// Teacher represents an instructor record. AvailableSlots is an advisory
// hint list of timeslot ids; the generator does not consult it.
type Teacher struct {
	ID             string         `db:"id" json:"id"`
	FullName       string         `db:"full_name" json:"full_name"`
	Email          *string        `db:"email" json:"email,omitempty"`
	Department     *string        `db:"department" json:"department,omitempty"`
	AvailableSlots pq.StringArray `db:"available_slots" json:"available_slots"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
