package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/scheduler"
	"github.com/google/uuid"
)

const TestOwner = "user-1"

// TestStart is the fixed plan start used by fixtures.
var TestStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type SourceOption func(*domain.Source)

func WithOwner(owner string) SourceOption {
	return func(s *domain.Source) {
		s.OwnerID = owner
	}
}

func WithExamDate(d time.Time) SourceOption {
	return func(s *domain.Source) {
		s.ExamDate = d
	}
}

func WithTopics(topics ...domain.Topic) SourceOption {
	return func(s *domain.Source) {
		s.Topics = topics
	}
}

// NewTestSource returns a source with three topics (one per tier) and an
// exam fourteen days after TestStart.
func NewTestSource(title string, opts ...SourceOption) *domain.Source {
	now := time.Now().UTC()
	s := &domain.Source{
		ID:       uuid.New().String(),
		OwnerID:  TestOwner,
		Title:    title,
		ExamDate: TestStart.AddDate(0, 0, 14),
		RawText:  title + " syllabus",
		Topics: []domain.Topic{
			NewTestTopic("A", domain.PriorityHigh, 4, "a1", "a2"),
			NewTestTopic("B", domain.PriorityMedium, 3, "b1"),
			NewTestTopic("C", domain.PriorityLow, 2),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestTopic(name string, p domain.Priority, hours float64, subtopics ...string) domain.Topic {
	return domain.Topic{Name: name, Subtopics: subtopics, Priority: p, EstimatedHours: hours}
}

// ManyTopics returns n medium-priority topics named T1..Tn.
func ManyTopics(n int) []domain.Topic {
	topics := make([]domain.Topic, n)
	for i := range topics {
		topics[i] = NewTestTopic(fmt.Sprintf("T%d", i+1), domain.PriorityMedium, 1)
	}
	return topics
}

// NewTestRoadmap allocates a roadmap for src from start to its exam date.
// It panics on allocation errors since fixtures are expected to be valid.
func NewTestRoadmap(src *domain.Source, start time.Time) *domain.Roadmap {
	days, err := scheduler.Allocate(src.Topics, start, src.ExamDate)
	if err != nil {
		panic(fmt.Sprintf("allocating test roadmap: %v", err))
	}
	now := time.Now().UTC()
	r, err := domain.NewRoadmap(uuid.New().String(), src.OwnerID, src.ID, src.Title+" - Study Plan",
		start, src.ExamDate, days, now)
	if err != nil {
		panic(fmt.Sprintf("building test roadmap: %v", err))
	}
	return r
}

// NewTestTask snapshots day n of r into a task.
func NewTestTask(r *domain.Roadmap, n int) *domain.Task {
	d, err := r.FindDay(n)
	if err != nil {
		panic(err)
	}
	return domain.NewTaskFromDay(uuid.New().String(), r, d, time.Now().UTC())
}

// NewTestDeck builds an unreviewed deck of n cards cycling over src's topics.
func NewTestDeck(src *domain.Source, n int) *domain.FlashcardDeck {
	cards := make([]domain.DeckCard, n)
	for i := range cards {
		topic := src.Topics[i%len(src.Topics)].Name
		cards[i] = domain.DeckCard{
			Index: i,
			Topic: topic,
			Front: fmt.Sprintf("What is %s? (%d)", topic, i),
			Back:  "See notes on " + topic,
		}
	}
	return &domain.FlashcardDeck{
		ID:        uuid.New().String(),
		OwnerID:   src.OwnerID,
		SourceID:  src.ID,
		Title:     "Flashcards - " + src.Title,
		Cards:     cards,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestMockTest builds a test with one question per topic of src. The
// correct option is always index 0.
func NewTestMockTest(src *domain.Source) *domain.MockTest {
	questions := make([]domain.TestQuestion, len(src.Topics))
	names := make([]string, len(src.Topics))
	for i, t := range src.Topics {
		names[i] = t.Name
		questions[i] = domain.TestQuestion{
			Topic:       t.Name,
			Prompt:      "Which statement describes " + t.Name + "?",
			Options:     []string{"right", "wrong", "also wrong", "none"},
			Explanation: "Revisit " + t.Name,
		}
	}
	return &domain.MockTest{
		ID:              uuid.New().String(),
		OwnerID:         src.OwnerID,
		SourceID:        src.ID,
		Title:           "Mock Test - " + src.Title,
		Topics:          names,
		Questions:       questions,
		DurationMinutes: domain.TestDuration(len(questions)),
		CreatedAt:       time.Now().UTC(),
	}
}
