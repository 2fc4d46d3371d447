package models

import "time"

// TimeSlot represents one schedulable period in the weekly grid.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	Day       string    `db:"day" json:"day"`
	Period    int       `db:"period" json:"period"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TimeSlotFilter captures supported filters for listing timeslots.
type TimeSlotFilter struct {
	Day       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
