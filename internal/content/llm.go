package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/llm"
)

// rawTextLimit bounds how much of a source's raw text goes into a prompt.
const rawTextLimit = 4000

const flashcardSystemPrompt = `You write exam flashcards. Respond with JSON only:
{"cards":[{"topic":"<topic name>","front":"<question>","back":"<answer>"}]}
Use only the listed topics. Keep answers under 60 words.`

const mockTestSystemPrompt = `You write multiple-choice exam questions. Respond with JSON only:
{"questions":[{"topic":"<topic name>","question":"<text>","options":["a","b","c","d"],"answer_index":0,"explanation":"<text>"}]}
Every question has exactly four options and answer_index is 0-3.`

const narrativeSystemPrompt = `You write a two-sentence study plan for one day. Respond with JSON only:
{"narrative":"<text>"}`

type llmGenerator struct {
	client llm.LLMClient
}

// NewLLMGenerator returns a generator backed by a local model.
func NewLLMGenerator(client llm.LLMClient) Generator {
	return &llmGenerator{client: client}
}

type flashcardReply struct {
	Cards []Flashcard `json:"cards"`
}

type mockTestReply struct {
	Questions []Question `json:"questions"`
}

type narrativeReply struct {
	Narrative string `json:"narrative"`
}

func (g *llmGenerator) Flashcards(ctx context.Context, req FlashcardRequest) ([]Flashcard, error) {
	n := normalizeCount(req.Count, DefaultFlashcardCount)
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskFlashcards,
		SystemPrompt: flashcardSystemPrompt,
		UserPrompt:   userPrompt(req.Title, req.RawText, req.Topics, fmt.Sprintf("Write %d flashcards.", n)),
	})
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	reply, err := llm.ExtractJSON(resp.Text, func(r flashcardReply) error {
		if len(r.Cards) == 0 {
			return errors.New("no cards")
		}
		for i, c := range r.Cards {
			if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
				return fmt.Errorf("card %d is missing front or back", i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	if len(reply.Cards) > n {
		reply.Cards = reply.Cards[:n]
	}
	return reply.Cards, nil
}

func (g *llmGenerator) MockTest(ctx context.Context, req MockTestRequest) ([]Question, error) {
	n := normalizeCount(req.Count, DefaultQuestionCount)
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskMockTest,
		SystemPrompt: mockTestSystemPrompt,
		UserPrompt:   userPrompt(req.Title, req.RawText, req.Topics, fmt.Sprintf("Write %d questions.", n)),
	})
	if err != nil {
		return nil, fmt.Errorf("generate mock test: %w", err)
	}
	reply, err := llm.ExtractJSON(resp.Text, func(r mockTestReply) error {
		if len(r.Questions) == 0 {
			return errors.New("no questions")
		}
		for i, q := range r.Questions {
			if strings.TrimSpace(q.Prompt) == "" {
				return fmt.Errorf("question %d is empty", i)
			}
			if len(q.Options) < 2 {
				return fmt.Errorf("question %d has %d options", i, len(q.Options))
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				return fmt.Errorf("question %d answer index %d out of range", i, q.AnswerIndex)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse mock test: %w", err)
	}
	if len(reply.Questions) > n {
		reply.Questions = reply.Questions[:n]
	}
	return reply.Questions, nil
}

func (g *llmGenerator) DayNarrative(ctx context.Context, topics []string) (string, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrative,
		SystemPrompt: narrativeSystemPrompt,
		UserPrompt:   "Topics for today: " + strings.Join(topics, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}
	reply, err := llm.ExtractJSON(resp.Text, func(r narrativeReply) error {
		if strings.TrimSpace(r.Narrative) == "" {
			return errors.New("empty narrative")
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("parse narrative: %w", err)
	}
	return strings.TrimSpace(reply.Narrative), nil
}

func userPrompt(title, rawText string, topics []domain.Topic, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exam: %s\nTopics:\n", title)
	for _, t := range topics {
		fmt.Fprintf(&b, "- %s (%s priority)", t.Name, t.Priority)
		if len(t.Subtopics) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(t.Subtopics, "; "))
		}
		b.WriteByte('\n')
	}
	if raw := strings.TrimSpace(rawText); raw != "" {
		if len(raw) > rawTextLimit {
			raw = raw[:rawTextLimit]
		}
		fmt.Fprintf(&b, "Syllabus text:\n%s\n", raw)
	}
	b.WriteString(instruction)
	return b.String()
}
