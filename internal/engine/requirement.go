package engine

import (
	"github.com/samber/lo"

	"github.com/edupoint/timetable-api/internal/models"
)

// SessionRequirement is one occurrence of a subject's weekly sessions
// awaiting a (timeslot, room) assignment. Requirements live for a single
// generation run and are never persisted.
type SessionRequirement struct {
	SubjectID  string
	TeacherID  string
	ClassGroup string
	Ordinal    int
}

// ExpandRequirements turns each subject into one requirement per weekly
// session, in subject-list order then ascending ordinal. That order is
// the tie-break seed for the priority sort. When classGroups is
// non-empty, subjects outside the scope contribute nothing.
func ExpandRequirements(subjects []models.Subject, classGroups []string) []SessionRequirement {
	scoped := subjects
	if len(classGroups) > 0 {
		scope := lo.SliceToMap(classGroups, func(g string) (string, struct{}) { return g, struct{}{} })
		scoped = lo.Filter(subjects, func(s models.Subject, _ int) bool {
			_, ok := scope[s.ClassGroup]
			return ok
		})
	}

	var requirements []SessionRequirement
	for _, subject := range scoped {
		for k := 1; k <= subject.SessionsPerWeek; k++ {
			requirements = append(requirements, SessionRequirement{
				SubjectID:  subject.ID,
				TeacherID:  subject.TeacherID,
				ClassGroup: subject.ClassGroup,
				Ordinal:    k,
			})
		}
	}
	return requirements
}
