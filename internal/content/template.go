package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/domain"
)

type templateGenerator struct{}

// NewTemplateGenerator returns a deterministic generator that needs no
// model. Items cycle through topics and their subtopics in order.
func NewTemplateGenerator() Generator {
	return templateGenerator{}
}

type prompt struct {
	topic   string
	subject string
}

// expandPrompts lists one prompt per subtopic, or per topic when it has none.
func expandPrompts(topics []domain.Topic) []prompt {
	var out []prompt
	for _, t := range topics {
		if len(t.Subtopics) == 0 {
			out = append(out, prompt{topic: t.Name, subject: t.Name})
			continue
		}
		for _, s := range t.Subtopics {
			out = append(out, prompt{topic: t.Name, subject: s})
		}
	}
	return out
}

func (templateGenerator) Flashcards(_ context.Context, req FlashcardRequest) ([]Flashcard, error) {
	prompts := expandPrompts(req.Topics)
	if len(prompts) == 0 {
		return []Flashcard{}, nil
	}
	n := normalizeCount(req.Count, DefaultFlashcardCount)
	cards := make([]Flashcard, 0, n)
	for i := 0; i < n; i++ {
		p := prompts[i%len(prompts)]
		front := fmt.Sprintf("What is %s?", p.subject)
		if p.subject != p.topic {
			front = fmt.Sprintf("Explain %s in the context of %s.", p.subject, p.topic)
		}
		cards = append(cards, Flashcard{
			Topic: p.topic,
			Front: front,
			Back:  fmt.Sprintf("Review your notes on %s and summarise the key definitions.", p.subject),
		})
	}
	return cards, nil
}

func (templateGenerator) MockTest(_ context.Context, req MockTestRequest) ([]Question, error) {
	prompts := expandPrompts(req.Topics)
	if len(prompts) == 0 {
		return []Question{}, nil
	}
	n := normalizeCount(req.Count, DefaultQuestionCount)
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		p := prompts[i%len(prompts)]
		questions = append(questions, Question{
			Topic:  p.topic,
			Prompt: fmt.Sprintf("Which statement best describes %s?", p.subject),
			Options: []string{
				fmt.Sprintf("The core definition of %s", p.subject),
				fmt.Sprintf("An unrelated property of %s", p.topic),
				"None of the above",
				"All of the above",
			},
			AnswerIndex: 0,
			Explanation: fmt.Sprintf("Revisit %s under %s.", p.subject, p.topic),
		})
	}
	return questions, nil
}

func (templateGenerator) DayNarrative(_ context.Context, topics []string) (string, error) {
	if len(topics) == 0 {
		return "Rest and review anything left over.", nil
	}
	return fmt.Sprintf("Today focus on %s. Work through the material, then test yourself before moving on.",
		strings.Join(topics, ", ")), nil
}
