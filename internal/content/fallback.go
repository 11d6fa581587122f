package content

import (
	"context"

	"github.com/alexanderramin/preplock/internal/logger"
)

type fallbackGenerator struct {
	primary  Generator
	fallback Generator
	log      *logger.Logger
}

// WithFallback serves from primary and switches to fallback on any error.
// A nil primary always uses fallback.
func WithFallback(primary, fallback Generator, log *logger.Logger) Generator {
	if log == nil {
		log = logger.NewNop()
	}
	if primary == nil {
		return fallback
	}
	return &fallbackGenerator{primary: primary, fallback: fallback, log: log}
}

func (g *fallbackGenerator) Flashcards(ctx context.Context, req FlashcardRequest) ([]Flashcard, error) {
	cards, err := g.primary.Flashcards(ctx, req)
	if err == nil {
		return cards, nil
	}
	g.log.Warn("content_fallback", "kind", "flashcards", "error", err.Error())
	return g.fallback.Flashcards(ctx, req)
}

func (g *fallbackGenerator) MockTest(ctx context.Context, req MockTestRequest) ([]Question, error) {
	qs, err := g.primary.MockTest(ctx, req)
	if err == nil {
		return qs, nil
	}
	g.log.Warn("content_fallback", "kind", "mock_test", "error", err.Error())
	return g.fallback.MockTest(ctx, req)
}

func (g *fallbackGenerator) DayNarrative(ctx context.Context, topics []string) (string, error) {
	text, err := g.primary.DayNarrative(ctx, topics)
	if err == nil {
		return text, nil
	}
	g.log.Warn("content_fallback", "kind", "narrative", "error", err.Error())
	return g.fallback.DayNarrative(ctx, topics)
}
