package domain

import (
	"math"
	"strings"
	"time"
)

// Progress is the cached completion summary of a roadmap. It is derived
// from Days by RecomputeProgress and never written directly.
type Progress struct {
	Completed  int
	Total      int
	Percentage int
}

type Roadmap struct {
	ID        string
	OwnerID   string
	SourceID  string
	Title     string
	ExamDate  time.Time
	StartDate time.Time
	TotalDays int
	Days      []Day
	Progress  Progress
	Status    RoadmapStatus
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRoadmap assembles an active roadmap from allocated days and derives
// its progress. The result is validated before it is returned.
func NewRoadmap(id, ownerID, sourceID, title string, start, exam time.Time, days []Day, now time.Time) (*Roadmap, error) {
	r := &Roadmap{
		ID:        id,
		OwnerID:   ownerID,
		SourceID:  sourceID,
		Title:     title,
		StartDate: CalendarDay(start),
		ExamDate:  CalendarDay(exam),
		TotalDays: len(days),
		Days:      days,
		Status:    RoadmapActive,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.RecomputeProgress()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RecomputeProgress rebuilds Progress from the day list and moves Status to
// completed exactly when every day is complete. It never moves Status away
// from completed. Every mutation of a day's completion must be followed by
// a call before the roadmap is read or persisted.
func (r *Roadmap) RecomputeProgress() {
	completed := 0
	for i := range r.Days {
		if r.Days[i].Completed {
			completed++
		}
	}
	total := len(r.Days)
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(completed) / float64(total)))
	}
	r.Progress = Progress{Completed: completed, Total: total, Percentage: pct}
	if total > 0 && completed == total {
		r.Status = RoadmapCompleted
	}
}

// FindDay returns a pointer into Days for the given day number.
func (r *Roadmap) FindDay(number int) (*Day, error) {
	// Days are contiguous and 1-based, so try the direct index first.
	if number >= 1 && number <= len(r.Days) && r.Days[number-1].Number == number {
		return &r.Days[number-1], nil
	}
	for i := range r.Days {
		if r.Days[i].Number == number {
			return &r.Days[i], nil
		}
	}
	return nil, &DayNotFoundError{RoadmapID: r.ID, DayNumber: number}
}

// CompleteDay marks one day complete and recomputes progress. It reports
// whether anything changed; completing a completed day is a no-op.
func (r *Roadmap) CompleteDay(number int, now time.Time) (bool, error) {
	d, err := r.FindDay(number)
	if err != nil {
		return false, err
	}
	changed := d.MarkComplete(now)
	if changed {
		r.UpdatedAt = now
	}
	r.RecomputeProgress()
	return changed, nil
}

// IsComplete reports whether every day is complete.
func (r *Roadmap) IsComplete() bool {
	return r.Progress.Total > 0 && r.Progress.Completed == r.Progress.Total
}

// DayOn returns the day scheduled on the calendar date of t, if any.
func (r *Roadmap) DayOn(t time.Time) (*Day, bool) {
	day := CalendarDay(t)
	offset := int(day.Sub(r.StartDate).Hours() / 24)
	if offset < 0 || offset >= len(r.Days) {
		return nil, false
	}
	d := &r.Days[offset]
	if !d.Date.Equal(day) {
		return nil, false
	}
	return d, true
}

func (r *Roadmap) Validate() error {
	if r.OwnerID == "" {
		return invalid("owner_id", "owner is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return invalid("title", "roadmap title is required")
	}
	if !r.ExamDate.After(r.StartDate) {
		return invalid("exam_date", "exam date %s must be after start date %s",
			r.ExamDate.Format(DateLayout), r.StartDate.Format(DateLayout))
	}
	if len(r.Days) == 0 {
		return invalid("days", "roadmap must have at least one day")
	}
	if r.TotalDays != len(r.Days) {
		return invalid("total_days", "total days %d does not match %d days", r.TotalDays, len(r.Days))
	}
	for i := range r.Days {
		d := &r.Days[i]
		if d.Number != i+1 {
			return invalid("days", "day at position %d has number %d", i+1, d.Number)
		}
		if want := r.StartDate.AddDate(0, 0, i); !d.Date.Equal(want) {
			return invalid("days", "day %d dated %s, want %s", d.Number,
				d.Date.Format(DateLayout), want.Format(DateLayout))
		}
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}
