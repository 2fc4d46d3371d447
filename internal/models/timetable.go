package models

import "time"

// TimetableEntry is one persisted assignment of a subject session to a
// (timeslot, room) pair for a class group.
type TimetableEntry struct {
	ID         string    `db:"id" json:"id"`
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	TimeslotID string    `db:"timeslot_id" json:"timeslot_id"`
	ClassGroup string    `db:"class_group" json:"class_group"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntryDetail is the denormalized display form of an entry,
// joined against subject, teacher, room and timeslot names on read.
type TimetableEntryDetail struct {
	TimetableEntry
	SubjectName string `db:"subject_name" json:"subject_name"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	RoomName    string `db:"room_name" json:"room_name"`
	Day         string `db:"day" json:"day"`
	Period      int    `db:"period" json:"period"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
}

// UnplacedSession reports one session requirement the generator could
// not fit anywhere in the grid.
type UnplacedSession struct {
	SubjectID  string `json:"subject_id"`
	TeacherID  string `json:"teacher_id"`
	ClassGroup string `json:"class_group"`
	Ordinal    int    `json:"ordinal"`
}
