package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/google/uuid"
)

// DefaultEstimatedHours applies to topics without an estimate.
const DefaultEstimatedHours = 4.0

// Convert turns a validated schema into a Source owned by ownerID.
// Call ValidateSyllabus first; Convert assumes the schema is valid.
func Convert(schema *SyllabusSchema, ownerID string, now time.Time) (*domain.Source, error) {
	exam, err := domain.ParseDate(schema.ExamDate)
	if err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}

	topics := make([]domain.Topic, 0, len(schema.Topics))
	for _, t := range schema.Topics {
		priority := domain.PriorityMedium
		if t.Priority != "" {
			priority = domain.Priority(strings.ToLower(t.Priority))
		}
		hours := DefaultEstimatedHours
		if t.EstimatedHours != nil {
			hours = *t.EstimatedHours
		}
		subs := make([]string, 0, len(t.Subtopics))
		for _, s := range t.Subtopics {
			subs = append(subs, strings.TrimSpace(s))
		}
		topics = append(topics, domain.Topic{
			Name:           strings.TrimSpace(t.Name),
			Subtopics:      subs,
			Priority:       priority,
			EstimatedHours: hours,
		})
	}

	src := &domain.Source{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(schema.Title),
		ExamDate:  exam,
		RawText:   schema.RawText,
		Topics:    topics,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}
