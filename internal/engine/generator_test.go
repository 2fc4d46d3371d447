package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/models"
)

func teacherFixture(id string) models.Teacher {
	return models.Teacher{ID: id, FullName: "Teacher " + id}
}

func subjectFixture(id, teacherID, group string, sessions int) models.Subject {
	return models.Subject{ID: id, Name: "Subject " + id, TeacherID: teacherID, ClassGroup: group, SessionsPerWeek: sessions}
}

func roomFixture(id string) models.Room {
	return models.Room{ID: id, Name: "Room " + id, Capacity: 40}
}

func timeslotFixture(id, day string, period int) models.TimeSlot {
	return models.TimeSlot{ID: id, Day: day, Period: period}
}

func TestGenerateSingleTeacherRunsOutOfTimeslots(t *testing.T) {
	result, err := NewGenerator().Generate(Input{
		Teachers:  []models.Teacher{teacherFixture("t1")},
		Subjects:  []models.Subject{subjectFixture("s1", "t1", "Class A", 3)},
		Rooms:     []models.Room{roomFixture("r1")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1), timeslotFixture("mon2", "Monday", 2)},
	})
	require.NoError(t, err)

	assert.Len(t, result.Assignments, 2)
	assert.Len(t, result.Unplaced, 1)
	slots := map[string]bool{}
	for _, a := range result.Assignments {
		assert.Equal(t, "t1", a.TeacherID)
		assert.Equal(t, "r1", a.RoomID)
		assert.False(t, slots[a.TimeslotID], "teacher booked twice at %s", a.TimeslotID)
		slots[a.TimeslotID] = true
	}
}

func TestGenerateSharedClassGroupForcesDistinctTimeslots(t *testing.T) {
	result, err := NewGenerator().Generate(Input{
		Teachers: []models.Teacher{teacherFixture("t1"), teacherFixture("t2")},
		Subjects: []models.Subject{
			subjectFixture("s1", "t1", "Class A", 1),
			subjectFixture("s2", "t2", "Class A", 1),
		},
		Rooms:     []models.Room{roomFixture("r1")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1), timeslotFixture("mon2", "Monday", 2)},
	})
	require.NoError(t, err)

	require.Len(t, result.Assignments, 2)
	assert.Empty(t, result.Unplaced)
	assert.NotEqual(t, result.Assignments[0].TimeslotID, result.Assignments[1].TimeslotID,
		"same class group must not share a timeslot even with different teachers")
}

func TestGenerateZeroSessionSubjectsSucceedTrivially(t *testing.T) {
	result, err := NewGenerator().Generate(Input{
		Teachers:  []models.Teacher{teacherFixture("t1")},
		Subjects:  []models.Subject{subjectFixture("s1", "t1", "Class A", 0)},
		Rooms:     []models.Room{roomFixture("r1")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	assert.Empty(t, result.Unplaced)
}

func TestGenerateEmptyInputsFail(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Input)
		missing string
	}{
		{"teachers", func(in *Input) { in.Teachers = nil }, "teachers"},
		{"subjects", func(in *Input) { in.Subjects = nil }, "subjects"},
		{"rooms", func(in *Input) { in.Rooms = nil }, "rooms"},
		{"timeslots", func(in *Input) { in.Timeslots = nil }, "timeslots"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := Input{
				Teachers:  []models.Teacher{teacherFixture("t1")},
				Subjects:  []models.Subject{subjectFixture("s1", "t1", "Class A", 1)},
				Rooms:     []models.Room{roomFixture("r1")},
				Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1)},
			}
			tc.mutate(&input)

			result, err := NewGenerator().Generate(input)
			require.Error(t, err)
			assert.Nil(t, result)

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, invalid.Missing, tc.missing)
		})
	}
}

func TestGenerateNoDoubleBookingAndConservation(t *testing.T) {
	var subjects []models.Subject
	total := 0
	for i := 1; i <= 6; i++ {
		teacher := fmt.Sprintf("t%d", (i-1)%3+1)
		group := fmt.Sprintf("Class %d", (i-1)%2+1)
		subjects = append(subjects, subjectFixture(fmt.Sprintf("s%d", i), teacher, group, i%4+1))
		total += i%4 + 1
	}
	var timeslots []models.TimeSlot
	for d, day := range []string{"Monday", "Tuesday", "Wednesday"} {
		for p := 1; p <= 4; p++ {
			timeslots = append(timeslots, timeslotFixture(fmt.Sprintf("ts%d-%d", d, p), day, p))
		}
	}

	result, err := NewGenerator().Generate(Input{
		Teachers:  []models.Teacher{teacherFixture("t1"), teacherFixture("t2"), teacherFixture("t3")},
		Subjects:  subjects,
		Rooms:     []models.Room{roomFixture("r1"), roomFixture("r2")},
		Timeslots: timeslots,
	})
	require.NoError(t, err)

	assert.Equal(t, total, len(result.Assignments)+len(result.Unplaced), "every requirement is placed or reported unplaced")

	teacherSlots := map[string]bool{}
	roomSlots := map[string]bool{}
	groupSlots := map[string]bool{}
	for _, a := range result.Assignments {
		tk := a.TeacherID + "|" + a.TimeslotID
		rk := a.RoomID + "|" + a.TimeslotID
		gk := a.ClassGroup + "|" + a.TimeslotID
		assert.False(t, teacherSlots[tk], "teacher double-booked: %s", tk)
		assert.False(t, roomSlots[rk], "room double-booked: %s", rk)
		assert.False(t, groupSlots[gk], "class group double-booked: %s", gk)
		teacherSlots[tk] = true
		roomSlots[rk] = true
		groupSlots[gk] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	input := Input{
		Teachers: []models.Teacher{teacherFixture("t1"), teacherFixture("t2")},
		Subjects: []models.Subject{
			subjectFixture("s1", "t1", "Class A", 2),
			subjectFixture("s2", "t2", "Class B", 3),
			subjectFixture("s3", "t1", "Class B", 1),
		},
		Rooms:     []models.Room{roomFixture("r1"), roomFixture("r2")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1), timeslotFixture("mon2", "Monday", 2), timeslotFixture("tue1", "Tuesday", 1)},
	}

	first, err := NewGenerator().Generate(input)
	require.NoError(t, err)
	second, err := NewGenerator().Generate(input)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Unplaced, second.Unplaced)
}

func TestGenerateDanglingTeacherIDIsOpaque(t *testing.T) {
	// The engine does not validate references: an unknown teacher id is
	// just another calendar key and the session still lands somewhere.
	result, err := NewGenerator().Generate(Input{
		Teachers:  []models.Teacher{teacherFixture("t1")},
		Subjects:  []models.Subject{subjectFixture("s1", "ghost", "Class A", 1)},
		Rooms:     []models.Room{roomFixture("r1")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1)},
	})
	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "ghost", result.Assignments[0].TeacherID)
}

func TestGenerateClassGroupScope(t *testing.T) {
	result, err := NewGenerator().Generate(Input{
		Teachers: []models.Teacher{teacherFixture("t1"), teacherFixture("t2")},
		Subjects: []models.Subject{
			subjectFixture("s1", "t1", "Class A", 1),
			subjectFixture("s2", "t2", "Class B", 1),
		},
		Rooms:       []models.Room{roomFixture("r1")},
		Timeslots:   []models.TimeSlot{timeslotFixture("mon1", "Monday", 1), timeslotFixture("mon2", "Monday", 2)},
		ClassGroups: []string{"Class B"},
	})
	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "Class B", result.Assignments[0].ClassGroup)
	assert.Empty(t, result.Unplaced)
}

func TestGenerateMostConstrainedPlacedFirst(t *testing.T) {
	// s1 shares a teacher with s2 and a group with s3, so its sessions
	// carry the highest degree and must open the placement order.
	result, err := NewGenerator().Generate(Input{
		Teachers: []models.Teacher{teacherFixture("t1"), teacherFixture("t2"), teacherFixture("t3")},
		Subjects: []models.Subject{
			subjectFixture("s3", "t3", "Class A", 1),
			subjectFixture("s1", "t1", "Class A", 1),
			subjectFixture("s2", "t1", "Class B", 1),
		},
		Rooms:     []models.Room{roomFixture("r1"), roomFixture("r2"), roomFixture("r3")},
		Timeslots: []models.TimeSlot{timeslotFixture("mon1", "Monday", 1), timeslotFixture("mon2", "Monday", 2)},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Assignments)
	assert.Equal(t, "s1", result.Assignments[0].SubjectID)
}
