package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is a snapshot of one roadmap day, completable on its own.
type Task struct {
	ID            string
	OwnerID       string
	RoadmapID     string
	DayNumber     int
	Title         string
	Description   string
	Topics        []string
	Duration      string
	Priority      Priority
	Type          TaskType
	ScheduledDate time.Time
	Completed     bool
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTaskFromDay snapshots a day of r into a task. Later changes to the
// day are not reflected in the task.
func NewTaskFromDay(id string, r *Roadmap, d *Day, now time.Time) *Task {
	topics := make([]string, len(d.Topics))
	copy(topics, d.Topics)
	t := &Task{
		ID:            id,
		OwnerID:       r.OwnerID,
		RoadmapID:     r.ID,
		DayNumber:     d.Number,
		Title:         TaskTitle(d),
		Description:   d.Focus,
		Topics:        topics,
		Duration:      d.DurationLabel,
		Priority:      d.Priority,
		Type:          TaskTypeForDay(d.Kind),
		ScheduledDate: d.Date,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if d.Completed {
		t.MarkComplete(now)
	}
	return t
}

// TaskTitle is the display title of a day's work, e.g. "Day 3: Algebra, Geometry".
func TaskTitle(d *Day) string {
	return fmt.Sprintf("Day %d: %s", d.Number, strings.Join(d.Topics, ", "))
}

// MarkComplete sets the task complete and reports whether it changed.
func (t *Task) MarkComplete(now time.Time) bool {
	if t.Completed {
		return false
	}
	t.Completed = true
	t.CompletedAt = &now
	t.UpdatedAt = now
	return true
}
