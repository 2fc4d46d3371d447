package engine

import "github.com/edupoint/timetable-api/internal/models"

// Assignment is one committed placement. Once emitted, no other
// assignment in the same run shares its (teacher, timeslot),
// (room, timeslot) or (class group, timeslot) pair.
type Assignment struct {
	SubjectID  string `json:"subject_id"`
	TeacherID  string `json:"teacher_id"`
	RoomID     string `json:"room_id"`
	TimeslotID string `json:"timeslot_id"`
	ClassGroup string `json:"class_group"`
}

// Assigner places a single requirement against live calendars. The
// default is greedy first-fit; a backtracking or solver-based
// implementation can be substituted without touching orchestration.
type Assigner interface {
	Place(req SessionRequirement, cals *Calendars) (Assignment, bool)
}

// GreedyAssigner scans (timeslot × room) pairs in the enumeration order
// it was built with and commits the first pair free across all three
// calendars. It never revisits earlier placements: best-effort greedy,
// not a constraint solver.
type GreedyAssigner struct {
	timeslots []models.TimeSlot
	rooms     []models.Room
}

// NewGreedyAssigner fixes the enumeration order for a run. Output
// depends on this order, so callers pass an explicit, prescribed one.
func NewGreedyAssigner(timeslots []models.TimeSlot, rooms []models.Room) *GreedyAssigner {
	return &GreedyAssigner{timeslots: timeslots, rooms: rooms}
}

// Place tries every (timeslot, room) pair for the requirement. Checks
// run teacher, then room, then class group, short-circuiting on the
// first busy calendar. On success all three calendars are committed
// together; on exhaustion nothing is mutated.
func (a *GreedyAssigner) Place(req SessionRequirement, cals *Calendars) (Assignment, bool) {
	for _, slot := range a.timeslots {
		for _, room := range a.rooms {
			if !cals.Teachers.Free(req.TeacherID, slot.ID) {
				continue
			}
			if !cals.Rooms.Free(room.ID, slot.ID) {
				continue
			}
			if !cals.Groups.Free(req.ClassGroup, slot.ID) {
				continue
			}

			cals.Teachers.Occupy(req.TeacherID, slot.ID)
			cals.Rooms.Occupy(room.ID, slot.ID)
			cals.Groups.Occupy(req.ClassGroup, slot.ID)

			return Assignment{
				SubjectID:  req.SubjectID,
				TeacherID:  req.TeacherID,
				RoomID:     room.ID,
				TimeslotID: slot.ID,
				ClassGroup: req.ClassGroup,
			}, true
		}
	}
	return Assignment{}, false
}
