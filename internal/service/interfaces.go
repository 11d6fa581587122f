package service

import (
	"context"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/importer"
	"github.com/alexanderramin/preplock/internal/repository"
)

type SourceService interface {
	Create(ctx context.Context, ownerID string, schema *importer.SyllabusSchema) (*domain.Source, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Source, error)
	GetTopics(ctx context.Context, ownerID, id string) ([]domain.Topic, error)
	List(ctx context.Context, ownerID string) ([]*domain.Source, error)
	// Delete removes a source together with its roadmaps, tasks, decks and
	// mock tests.
	Delete(ctx context.Context, ownerID, id string) (*contract.DeleteSourceResponse, error)
}

type RoadmapService interface {
	Generate(ctx context.Context, req contract.GenerateRoadmapRequest) (*contract.GenerateRoadmapResponse, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Roadmap, error)
	GetActive(ctx context.Context, ownerID string) (*domain.Roadmap, error)
	GetBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error)
	List(ctx context.Context, ownerID string) ([]*domain.Roadmap, error)
}

type CompletionService interface {
	CompleteDay(ctx context.Context, req contract.CompleteDayRequest) (*contract.CompleteDayResponse, error)
}

type TaskService interface {
	// MaterializeWindow snapshots the given days of r into tasks through
	// tasks, which is usually bound to the generating transaction.
	MaterializeWindow(ctx context.Context, tasks repository.TaskRepo, r *domain.Roadmap, dayNumbers []int) ([]*domain.Task, error)
	CompleteTask(ctx context.Context, ownerID, taskID string) (*contract.CompleteTaskResponse, error)
	TodayTasks(ctx context.Context, req contract.TodayRequest) (*contract.TodayResponse, error)
	ListByRoadmap(ctx context.Context, ownerID, roadmapID string) ([]*domain.Task, error)
}

type ContentService interface {
	Flashcards(ctx context.Context, ownerID, sourceID string, count int) ([]content.Flashcard, error)
	MockTest(ctx context.Context, ownerID, sourceID string, count int) ([]content.Question, error)
	DayNarrative(ctx context.Context, ownerID, roadmapID string, dayNumber int) (string, error)
}

// StudyService keeps generated flashcards and mock tests so they can be
// reviewed and retaken.
type StudyService interface {
	CreateDeck(ctx context.Context, ownerID, sourceID string, count int) (*domain.FlashcardDeck, error)
	GetDeck(ctx context.Context, ownerID, id string) (*domain.FlashcardDeck, error)
	ListDecks(ctx context.Context, ownerID string) ([]*domain.FlashcardDeck, error)
	ReviewCard(ctx context.Context, req contract.ReviewCardRequest) (*domain.FlashcardDeck, error)
	DeleteDeck(ctx context.Context, ownerID, id string) error

	CreateMockTest(ctx context.Context, ownerID, sourceID string, count int) (*domain.MockTest, error)
	GetMockTest(ctx context.Context, ownerID, id string) (*domain.MockTest, error)
	ListMockTests(ctx context.Context, ownerID string) ([]*domain.MockTest, error)
	SubmitMockTest(ctx context.Context, req contract.SubmitTestRequest) (*contract.SubmitTestResponse, error)
	ListAttempts(ctx context.Context, ownerID, mockTestID string) ([]*domain.TestAttempt, error)
	DeleteMockTest(ctx context.Context, ownerID, id string) error
}
