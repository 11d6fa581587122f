package domain

import (
	"strings"
	"time"
)

// Topic is one syllabus topic as delivered by a topic source. Priority and
// estimated hours arrive precomputed.
type Topic struct {
	Name           string
	Subtopics      []string
	Priority       Priority
	EstimatedHours float64
}

func (t Topic) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "topic name is required")
	}
	if !ValidPriorities[string(t.Priority)] {
		return invalid("priority", "topic %q has invalid priority %q", t.Name, t.Priority)
	}
	if t.EstimatedHours <= 0 {
		return invalid("estimated_hours", "topic %q must have positive estimated hours", t.Name)
	}
	return nil
}

// Source is a stored topic source (an uploaded syllabus) owned by one user.
type Source struct {
	ID        string
	OwnerID   string
	Title     string
	ExamDate  time.Time
	RawText   string
	Topics    []Topic
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Source) Validate() error {
	if s.OwnerID == "" {
		return invalid("owner_id", "owner is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return invalid("title", "source title is required")
	}
	if s.ExamDate.IsZero() {
		return invalid("exam_date", "exam date is required")
	}
	for _, t := range s.Topics {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TopicNames returns the names of topics in their stored order.
func TopicNames(topics []Topic) []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}
