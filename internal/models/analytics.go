package models

import "time"

// TeacherWorkload counts assigned sessions per teacher.
type TeacherWorkload struct {
	TeacherID   string `db:"teacher_id" json:"teacher_id"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	Sessions    int    `db:"sessions" json:"sessions"`
}

// RoomUtilization counts assigned sessions per room.
type RoomUtilization struct {
	RoomID   string `db:"room_id" json:"room_id"`
	RoomName string `db:"room_name" json:"room_name"`
	Sessions int    `db:"sessions" json:"sessions"`
}

// PeriodLoad counts assigned sessions per timeslot start time. Used for
// peak-hour reporting.
type PeriodLoad struct {
	StartTime string `db:"start_time" json:"start_time"`
	Sessions  int    `db:"sessions" json:"sessions"`
}

// TimetableOverview summarises the current timetable.
type TimetableOverview struct {
	TotalAssignments int `json:"total_assignments"`
	TotalTimeslots   int `json:"total_timeslots"`
	FreeSlots        int `json:"free_slots"`
}

// AnalyticsSystemMetrics exposes aggregated runtime metrics for admin views.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
