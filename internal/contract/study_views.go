package contract

import (
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

type CardView struct {
	Index        int        `json:"index"`
	Topic        string     `json:"topic"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Mastered     bool       `json:"mastered"`
	ReviewCount  int        `json:"reviewCount"`
	LastReviewed *time.Time `json:"lastReviewed"`
}

type DeckView struct {
	ID            string     `json:"id"`
	SourceID      string     `json:"sourceId"`
	Title         string     `json:"title"`
	Cards         []CardView `json:"cards"`
	TotalCards    int        `json:"totalCards"`
	MasteredCount int        `json:"masteredCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// QuestionView leaves out the answer; it is revealed on submission.
type QuestionView struct {
	Index   int      `json:"index"`
	Topic   string   `json:"topic"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

type MockTestView struct {
	ID             string         `json:"id"`
	SourceID       string         `json:"sourceId"`
	Title          string         `json:"title"`
	Topics         []string       `json:"topics"`
	Questions      []QuestionView `json:"questions"`
	TotalQuestions int            `json:"totalQuestions"`
	Duration       int            `json:"duration"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type AnswerView struct {
	QuestionIndex int  `json:"questionIndex"`
	Selected      int  `json:"selectedAnswer"`
	Correct       bool `json:"isCorrect"`
	TimeTaken     int  `json:"timeTaken"`
}

type TopicScoreView struct {
	Topic      string `json:"topic"`
	Correct    int    `json:"correctCount"`
	Total      int    `json:"totalCount"`
	Percentage int    `json:"percentage"`
}

type AttemptView struct {
	ID             string           `json:"id"`
	MockTestID     string           `json:"mockTestId"`
	Answers        []AnswerView     `json:"answers"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     int              `json:"percentage"`
	TopicScores    []TopicScoreView `json:"topicStats"`
	WeakTopics     []TopicScoreView `json:"weakTopics"`
	TimeSpent      int              `json:"timeSpent"`
	CompletedAt    time.Time        `json:"completedAt"`
}

type CorrectAnswerView struct {
	QuestionIndex int    `json:"questionIndex"`
	AnswerIndex   int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type SubmitTestView struct {
	Attempt        AttemptView         `json:"attempt"`
	CorrectAnswers []CorrectAnswerView `json:"correctAnswers"`
}

type DeleteSourceView struct {
	SourceID        string `json:"sourceId"`
	RoadmapsDeleted int    `json:"roadmapsDeleted"`
}

func NewDeckView(d *domain.FlashcardDeck) DeckView {
	cards := make([]CardView, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = CardView{
			Index:        c.Index,
			Topic:        c.Topic,
			Front:        c.Front,
			Back:         c.Back,
			Mastered:     c.Mastered,
			ReviewCount:  c.ReviewCount,
			LastReviewed: c.LastReviewedAt,
		}
	}
	return DeckView{
		ID:            d.ID,
		SourceID:      d.SourceID,
		Title:         d.Title,
		Cards:         cards,
		TotalCards:    len(d.Cards),
		MasteredCount: d.MasteredCount(),
		CreatedAt:     d.CreatedAt,
	}
}

func NewDeckViews(decks []*domain.FlashcardDeck) []DeckView {
	out := make([]DeckView, len(decks))
	for i, d := range decks {
		out[i] = NewDeckView(d)
	}
	return out
}

func NewMockTestView(t *domain.MockTest) MockTestView {
	qs := make([]QuestionView, len(t.Questions))
	for i, q := range t.Questions {
		qs[i] = QuestionView{Index: i, Topic: q.Topic, Prompt: q.Prompt, Options: nonNil(q.Options)}
	}
	return MockTestView{
		ID:             t.ID,
		SourceID:       t.SourceID,
		Title:          t.Title,
		Topics:         nonNil(t.Topics),
		Questions:      qs,
		TotalQuestions: len(t.Questions),
		Duration:       t.DurationMinutes,
		CreatedAt:      t.CreatedAt,
	}
}

func NewMockTestViews(tests []*domain.MockTest) []MockTestView {
	out := make([]MockTestView, len(tests))
	for i, t := range tests {
		out[i] = NewMockTestView(t)
	}
	return out
}

func NewAttemptView(a *domain.TestAttempt) AttemptView {
	answers := make([]AnswerView, len(a.Answers))
	for i, g := range a.Answers {
		answers[i] = AnswerView{QuestionIndex: g.QuestionIndex, Selected: g.Selected, Correct: g.Correct, TimeTaken: g.TimeTakenSeconds}
	}
	return AttemptView{
		ID:             a.ID,
		MockTestID:     a.MockTestID,
		Answers:        answers,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Percentage:     a.Percentage,
		TopicScores:    newTopicScoreViews(a.TopicScores),
		WeakTopics:     newTopicScoreViews(a.WeakTopics),
		TimeSpent:      a.TimeSpentSeconds,
		CompletedAt:    a.CompletedAt,
	}
}

func NewAttemptViews(attempts []*domain.TestAttempt) []AttemptView {
	out := make([]AttemptView, len(attempts))
	for i, a := range attempts {
		out[i] = NewAttemptView(a)
	}
	return out
}

func NewSubmitTestView(r *SubmitTestResponse) SubmitTestView {
	correct := make([]CorrectAnswerView, len(r.Test.Questions))
	for i, q := range r.Test.Questions {
		correct[i] = CorrectAnswerView{QuestionIndex: i, AnswerIndex: q.AnswerIndex, Explanation: q.Explanation}
	}
	return SubmitTestView{Attempt: NewAttemptView(r.Attempt), CorrectAnswers: correct}
}

func NewDeleteSourceView(r *DeleteSourceResponse) DeleteSourceView {
	return DeleteSourceView{SourceID: r.SourceID, RoadmapsDeleted: r.RoadmapsDeleted}
}

func newTopicScoreViews(scores []domain.TopicScore) []TopicScoreView {
	out := make([]TopicScoreView, len(scores))
	for i, s := range scores {
		out[i] = TopicScoreView(s)
	}
	return out
}
