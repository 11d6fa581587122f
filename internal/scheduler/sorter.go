package scheduler

import (
	"sort"

	"github.com/alexanderramin/preplock/internal/domain"
)

// SortByPriority returns a copy of topics ordered high > medium > low.
// Topics within a tier keep their input order.
func SortByPriority(topics []domain.Topic) []domain.Topic {
	sorted := make([]domain.Topic, len(topics))
	copy(sorted, topics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

// DayPriority assigns a study day's priority by which third of the study
// span it falls in. day is 1-based.
func DayPriority(day, studyDays int) domain.Priority {
	switch {
	case 3*day <= studyDays:
		return domain.PriorityHigh
	case 3*day <= 2*studyDays:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
