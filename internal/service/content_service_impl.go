package service

import (
	"context"
	"time"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/repository"
)

type contentService struct {
	sources   repository.SourceRepo
	roadmaps  repository.RoadmapRepo
	tasks     repository.TaskRepo
	generator content.Generator
	observer  UseCaseObserver
}

func NewContentService(
	sources repository.SourceRepo,
	roadmaps repository.RoadmapRepo,
	tasks repository.TaskRepo,
	generator content.Generator,
	observers ...UseCaseObserver,
) ContentService {
	if generator == nil {
		generator = content.NewTemplateGenerator()
	}
	return &contentService{
		sources:   sources,
		roadmaps:  roadmaps,
		tasks:     tasks,
		generator: generator,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *contentService) Flashcards(ctx context.Context, ownerID, sourceID string, count int) (cards []content.Flashcard, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "content.flashcards", startedAt, &err,
			map[string]any{"owner_id": ownerID, "source_id": sourceID, "count": len(cards)})
	}()

	src, err := s.sources.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}
	return s.generator.Flashcards(ctx, content.FlashcardRequest{
		Title:   src.Title,
		RawText: src.RawText,
		Topics:  src.Topics,
		Count:   count,
	})
}

func (s *contentService) MockTest(ctx context.Context, ownerID, sourceID string, count int) (questions []content.Question, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "content.mock_test", startedAt, &err,
			map[string]any{"owner_id": ownerID, "source_id": sourceID, "count": len(questions)})
	}()

	src, err := s.sources.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}
	return s.generator.MockTest(ctx, content.MockTestRequest{
		Title:   src.Title,
		RawText: src.RawText,
		Topics:  src.Topics,
		Count:   count,
	})
}

func (s *contentService) DayNarrative(ctx context.Context, ownerID, roadmapID string, dayNumber int) (string, error) {
	rm, err := s.roadmaps.GetByID(ctx, ownerID, roadmapID)
	if err != nil {
		return "", err
	}
	d, err := rm.FindDay(dayNumber)
	if err != nil {
		return "", err
	}
	return s.generator.DayNarrative(ctx, s.narrativeTopics(ctx, rm.ID, d))
}

// narrativeTopics prefers the topics of the day's materialized tasks,
// which is what the learner sees in today's list. Days outside the task
// window, or a failed lookup, fall back to the day's own topics.
func (s *contentService) narrativeTopics(ctx context.Context, roadmapID string, d *domain.Day) []string {
	if s.tasks == nil {
		return d.Topics
	}
	tasks, err := s.tasks.ListByDay(ctx, roadmapID, d.Number)
	if err != nil || len(tasks) == 0 {
		return d.Topics
	}
	var topics []string
	seen := map[string]bool{}
	for _, t := range tasks {
		for _, name := range t.Topics {
			if !seen[name] {
				seen[name] = true
				topics = append(topics, name)
			}
		}
	}
	if len(topics) == 0 {
		return d.Topics
	}
	return topics
}
