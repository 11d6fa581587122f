package domain

import "time"

type Day struct {
	Number        int
	Date          time.Time
	Kind          DayKind
	Topics        []string
	Subtopics     []string
	Focus         string
	DurationLabel string
	Hours         float64
	Priority      Priority
	Completed     bool
	CompletedAt   *time.Time
	Notes         string
}

// MarkComplete sets the day complete and reports whether it changed.
// An already completed day keeps its original CompletedAt.
func (d *Day) MarkComplete(now time.Time) bool {
	if d.Completed {
		return false
	}
	d.Completed = true
	d.CompletedAt = &now
	return true
}

// Revert clears completion. No use case exposes it; it exists so the
// completion fields stay consistent if one is ever added.
func (d *Day) Revert() {
	d.Completed = false
	d.CompletedAt = nil
}

func (d *Day) Validate() error {
	if d.Number < 1 {
		return invalid("day", "day number must be positive, got %d", d.Number)
	}
	if len(d.Topics) == 0 {
		return invalid("topics", "day %d has no topics", d.Number)
	}
	if d.Completed != (d.CompletedAt != nil) {
		return invalid("completed_at", "day %d completion timestamp out of sync", d.Number)
	}
	if !ValidPriorities[string(d.Priority)] {
		return invalid("priority", "day %d has invalid priority %q", d.Number, d.Priority)
	}
	return nil
}
