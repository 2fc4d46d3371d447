package engine

// Calendar maps a resource id to the set of timeslot ids it already
// occupies. Occupancy only grows within a run; nothing frees a slot.
type Calendar map[string]map[string]struct{}

// Free reports whether the resource has no booking at the timeslot.
func (c Calendar) Free(resourceID, timeslotID string) bool {
	_, taken := c[resourceID][timeslotID]
	return !taken
}

// Occupy books the timeslot for the resource. Idempotent.
func (c Calendar) Occupy(resourceID, timeslotID string) {
	slots, ok := c[resourceID]
	if !ok {
		slots = make(map[string]struct{})
		c[resourceID] = slots
	}
	slots[timeslotID] = struct{}{}
}

// Calendars bundles the three occupancy dimensions checked before any
// placement. They are scratch state owned by one generation run and are
// always constructed by the caller, never shared.
type Calendars struct {
	Teachers Calendar
	Rooms    Calendar
	Groups   Calendar
}

// NewCalendars returns empty calendars for a single run.
func NewCalendars() *Calendars {
	return &Calendars{
		Teachers: make(Calendar),
		Rooms:    make(Calendar),
		Groups:   make(Calendar),
	}
}
