package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// WeakTopicThreshold is the percentage below which a topic is reported
// as weak after a mock test attempt.
const WeakTopicThreshold = 60

// FlashcardDeck is a saved set of generated cards for one source.
type FlashcardDeck struct {
	ID        string
	OwnerID   string
	SourceID  string
	Title     string
	Cards     []DeckCard
	CreatedAt time.Time
}

type DeckCard struct {
	Index          int
	Topic          string
	Front          string
	Back           string
	Mastered       bool
	ReviewCount    int
	LastReviewedAt *time.Time
}

// MasteredCount is derived from the cards, never stored.
func (d *FlashcardDeck) MasteredCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.Mastered {
			n++
		}
	}
	return n
}

// Card returns the card at a zero-based index.
func (d *FlashcardDeck) Card(index int) (*DeckCard, error) {
	if index < 0 || index >= len(d.Cards) {
		return nil, &CardNotFoundError{DeckID: d.ID, Index: index}
	}
	return &d.Cards[index], nil
}

// Review counts one pass over a card. Marking it mastered is sticky.
func (c *DeckCard) Review(mastered bool, now time.Time) {
	c.ReviewCount++
	c.LastReviewedAt = &now
	if mastered {
		c.Mastered = true
	}
}

// MockTest is a saved multiple-choice test for one source.
type MockTest struct {
	ID              string
	OwnerID         string
	SourceID        string
	Title           string
	Topics          []string
	Questions       []TestQuestion
	DurationMinutes int
	CreatedAt       time.Time
}

type TestQuestion struct {
	Topic       string
	Prompt      string
	Options     []string
	AnswerIndex int
	Explanation string
}

// TestDuration allows two minutes a question, with a 15 minute floor.
func TestDuration(questions int) int {
	return max(questions*2, 15)
}

// AnswerSubmission is one answer as sent by the taker.
type AnswerSubmission struct {
	QuestionIndex    int
	Selected         int
	TimeTakenSeconds int
}

type GradedAnswer struct {
	QuestionIndex    int
	Selected         int
	Correct          bool
	TimeTakenSeconds int
}

type TopicScore struct {
	Topic      string
	Correct    int
	Total      int
	Percentage int
}

// TestAttempt is one graded submission of a mock test.
type TestAttempt struct {
	ID               string
	OwnerID          string
	MockTestID       string
	Answers          []GradedAnswer
	Score            int
	TotalQuestions   int
	Percentage       int
	TopicScores      []TopicScore
	WeakTopics       []TopicScore
	TimeSpentSeconds int
	CompletedAt      time.Time
}

// Grade scores answers against the test. Unanswered questions are left
// out of the attempt; an index outside the test or an option outside
// its question is a validation error.
func (t *MockTest) Grade(id string, answers []AnswerSubmission, timeSpent int, now time.Time) (*TestAttempt, error) {
	if len(answers) == 0 {
		return nil, invalid("answers", "at least one answer is required")
	}
	if timeSpent < 0 {
		return nil, invalid("time_spent", "must not be negative, got %d", timeSpent)
	}
	seen := make(map[int]bool, len(answers))
	graded := make([]GradedAnswer, len(answers))
	stats := map[string]*TopicScore{}
	var order []string
	score := 0
	for i, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(t.Questions) {
			return nil, invalid("answers", "question %d does not exist", a.QuestionIndex)
		}
		if seen[a.QuestionIndex] {
			return nil, invalid("answers", "question %d answered twice", a.QuestionIndex)
		}
		seen[a.QuestionIndex] = true
		q := t.Questions[a.QuestionIndex]
		if a.Selected < 0 || a.Selected >= len(q.Options) {
			return nil, invalid("answers", "option %d out of range for question %d", a.Selected, a.QuestionIndex)
		}
		correct := a.Selected == q.AnswerIndex
		graded[i] = GradedAnswer{
			QuestionIndex:    a.QuestionIndex,
			Selected:         a.Selected,
			Correct:          correct,
			TimeTakenSeconds: max(a.TimeTakenSeconds, 0),
		}

		topic := strings.TrimSpace(q.Topic)
		if topic == "" {
			topic = "General"
		}
		st, ok := stats[topic]
		if !ok {
			st = &TopicScore{Topic: topic}
			stats[topic] = st
			order = append(order, topic)
		}
		st.Total++
		if correct {
			st.Correct++
			score++
		}
	}

	scores := make([]TopicScore, 0, len(order))
	var weak []TopicScore
	for _, name := range order {
		st := *stats[name]
		st.Percentage = percent(st.Correct, st.Total)
		scores = append(scores, st)
		if st.Percentage < WeakTopicThreshold {
			weak = append(weak, st)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Percentage < weak[j].Percentage })

	return &TestAttempt{
		ID:               id,
		OwnerID:          t.OwnerID,
		MockTestID:       t.ID,
		Answers:          graded,
		Score:            score,
		TotalQuestions:   len(graded),
		Percentage:       percent(score, len(graded)),
		TopicScores:      scores,
		WeakTopics:       weak,
		TimeSpentSeconds: timeSpent,
		CompletedAt:      now,
	}, nil
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
