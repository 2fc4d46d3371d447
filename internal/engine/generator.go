package engine

import (
	"fmt"
	"strings"

	"github.com/edupoint/timetable-api/internal/models"
)

// Input carries the four entity lists one generation run works over,
// plus an optional class-group scope. List order is significant: the
// assigner enumerates timeslots and rooms exactly as given.
type Input struct {
	Teachers    []models.Teacher
	Subjects    []models.Subject
	Rooms       []models.Room
	Timeslots   []models.TimeSlot
	ClassGroups []string
}

// Result is the outcome of one run. Assignments are in placement order,
// not timeslot order. Unplaced requirements are a normal partial-success
// state, not an error.
type Result struct {
	Assignments []Assignment
	Unplaced    []SessionRequirement
}

// InvalidInputError reports which input collections were empty. The run
// never starts when any of the four is missing.
type InvalidInputError struct {
	Missing []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("cannot generate timetable: no %s configured", strings.Join(e.Missing, ", "))
}

// Generator runs the full pipeline: expand, build the conflict graph,
// order by degree, place greedily. It holds no state across runs and a
// single Generator is safe for concurrent Generate calls.
type Generator struct {
	newAssigner func(timeslots []models.TimeSlot, rooms []models.Room) Assigner
}

// NewGenerator returns a generator backed by the greedy first-fit
// assigner.
func NewGenerator() *Generator {
	return &Generator{
		newAssigner: func(timeslots []models.TimeSlot, rooms []models.Room) Assigner {
			return NewGreedyAssigner(timeslots, rooms)
		},
	}
}

// NewGeneratorWith lets callers substitute the assignment strategy.
func NewGeneratorWith(newAssigner func(timeslots []models.TimeSlot, rooms []models.Room) Assigner) *Generator {
	return &Generator{newAssigner: newAssigner}
}

// Generate produces a timetable for the input. It fails only on
// degenerate input (an empty entity list); an individual requirement
// that fits nowhere is recorded in Unplaced and the run continues.
// Identical input order always yields identical output.
func (g *Generator) Generate(input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	requirements := ExpandRequirements(input.Subjects, input.ClassGroups)
	result := &Result{
		Assignments: make([]Assignment, 0, len(requirements)),
		Unplaced:    make([]SessionRequirement, 0),
	}
	if len(requirements) == 0 {
		// Subjects exist but none demand sessions: trivial success.
		return result, nil
	}

	conflicts := BuildConflictGraph(requirements)
	order := OrderByDegree(conflicts)

	calendars := NewCalendars()
	assigner := g.newAssigner(input.Timeslots, input.Rooms)

	for _, idx := range order {
		req := requirements[idx]
		assignment, placed := assigner.Place(req, calendars)
		if !placed {
			result.Unplaced = append(result.Unplaced, req)
			continue
		}
		result.Assignments = append(result.Assignments, assignment)
	}
	return result, nil
}

func validateInput(input Input) error {
	var missing []string
	if len(input.Teachers) == 0 {
		missing = append(missing, "teachers")
	}
	if len(input.Subjects) == 0 {
		missing = append(missing, "subjects")
	}
	if len(input.Rooms) == 0 {
		missing = append(missing, "rooms")
	}
	if len(input.Timeslots) == 0 {
		missing = append(missing, "timeslots")
	}
	if len(missing) > 0 {
		return &InvalidInputError{Missing: missing}
	}
	return nil
}
