// Package content produces study material (flashcards, mock tests, day
// narratives) for a source's topics. It is never called by the scheduler.
package content

import (
	"context"

	"github.com/alexanderramin/preplock/internal/domain"
)

const (
	DefaultFlashcardCount = 10
	DefaultQuestionCount  = 5
	MaxItems              = 50
)

type Flashcard struct {
	Topic string `json:"topic"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Question struct {
	Topic       string   `json:"topic"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

type FlashcardRequest struct {
	Title   string
	RawText string
	Topics  []domain.Topic
	Count   int
}

type MockTestRequest struct {
	Title   string
	RawText string
	Topics  []domain.Topic
	Count   int
}

// Generator produces study content for topics.
type Generator interface {
	Flashcards(ctx context.Context, req FlashcardRequest) ([]Flashcard, error)
	MockTest(ctx context.Context, req MockTestRequest) ([]Question, error)
	DayNarrative(ctx context.Context, topics []string) (string, error)
}

func normalizeCount(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	if n > MaxItems {
		return MaxItems
	}
	return n
}
