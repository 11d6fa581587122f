package scheduler

import (
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// MaxRevisionDays caps the revision tail at the end of a plan.
const MaxRevisionDays = 7

// Plan describes the split of a horizon into study and revision days.
type Plan struct {
	TotalDays    int
	StudyDays    int
	RevisionDays int
}

// PlanHorizon splits the calendar days between start and exam. It fails
// with *domain.InsufficientTimeError when the horizon is shorter than
// domain.MinHorizonDays or leaves no study day.
func PlanHorizon(start, exam time.Time) (Plan, error) {
	s, e := domain.CalendarDay(start), domain.CalendarDay(exam)
	total := 0
	if e.After(s) {
		total = int(e.Sub(s).Hours()) / 24
	}
	if total < domain.MinHorizonDays {
		return Plan{TotalDays: total}, &domain.InsufficientTimeError{HorizonDays: total}
	}
	revision := min(MaxRevisionDays, total/3)
	study := total - revision
	if study < 1 {
		return Plan{TotalDays: total}, &domain.InsufficientTimeError{HorizonDays: total, StudyDays: study}
	}
	return Plan{TotalDays: total, StudyDays: study, RevisionDays: revision}, nil
}

// Allocate turns prioritized topics into one Day per calendar day from
// start up to the day before exam. It is pure: the same input always
// yields the same days.
//
// Topics are sorted high > medium > low and chunked evenly over the study
// days; study days without a chunk become buffer days. The last
// RevisionDays days are revision days whose subtopics come from
// RotateRevisionSubtopics.
func Allocate(topics []domain.Topic, start, exam time.Time) ([]domain.Day, error) {
	if len(topics) == 0 {
		return nil, domain.ErrEmptyTopics
	}
	plan, err := PlanHorizon(start, exam)
	if err != nil {
		return nil, err
	}

	sorted := SortByPriority(topics)
	chunk := (len(sorted) + plan.StudyDays - 1) / plan.StudyDays
	startDay := domain.CalendarDay(start)
	days := make([]domain.Day, 0, plan.TotalDays)

	for i := 0; i < plan.StudyDays; i++ {
		lo := min(i*chunk, len(sorted))
		hi := min((i+1)*chunk, len(sorted))
		days = append(days, studyDay(sorted[lo:hi], i, plan.StudyDays, startDay))
	}

	rotation := RotateRevisionSubtopics(sorted, plan.RevisionDays)
	for r := 0; r < plan.RevisionDays; r++ {
		i := plan.StudyDays + r
		days = append(days, domain.Day{
			Number:        i + 1,
			Date:          startDay.AddDate(0, 0, i),
			Kind:          domain.DayRevision,
			Topics:        []string{domain.RevisionTopic},
			Subtopics:     rotation[r],
			Focus:         domain.RevisionTopic,
			Hours:         RevisionDayHours,
			DurationLabel: DurationLabel(RevisionDayHours),
			Priority:      domain.PriorityHigh,
		})
	}
	return days, nil
}

func studyDay(chunk []domain.Topic, i, studyDays int, startDay time.Time) domain.Day {
	d := domain.Day{
		Number:   i + 1,
		Date:     startDay.AddDate(0, 0, i),
		Priority: DayPriority(i+1, studyDays),
	}
	if len(chunk) == 0 {
		d.Kind = domain.DayBuffer
		d.Topics = []string{domain.BufferTopic}
		d.Subtopics = []string{}
		d.Focus = domain.BufferTopic
		d.DurationLabel = DurationLabel(0)
		return d
	}
	d.Kind = domain.DayStudy
	d.Topics = domain.TopicNames(chunk)
	d.Subtopics = []string{}
	for _, t := range chunk {
		d.Subtopics = append(d.Subtopics, t.Subtopics...)
		d.Hours += t.EstimatedHours
	}
	d.Focus = d.Topics[0]
	d.DurationLabel = DurationLabel(d.Hours)
	return d
}
