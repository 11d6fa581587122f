package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// Every lookup takes an explicit owner id. A row owned by someone else is
// reported as not found.

type SourceRepo interface {
	Create(ctx context.Context, s *domain.Source) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Source, error)
	GetTopics(ctx context.Context, ownerID, id string) ([]domain.Topic, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Source, error)
	// Delete removes the source with its topics, decks and mock tests.
	// Roadmaps must be removed first with RoadmapRepo.DeleteBySource.
	Delete(ctx context.Context, ownerID, id string) error
}

type RoadmapRepo interface {
	// Create inserts the roadmap and all of its days. Run it inside a
	// UnitOfWork so a failure leaves nothing behind.
	Create(ctx context.Context, r *domain.Roadmap) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Roadmap, error)
	// GetLatestBySource prefers the active roadmap, else the newest one.
	GetLatestBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error)
	GetActiveBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error)
	// GetActive returns the owner's most recently created active roadmap.
	GetActive(ctx context.Context, ownerID string) (*domain.Roadmap, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Roadmap, error)
	// ListActive returns active roadmaps in creation order.
	ListActive(ctx context.Context, ownerID string) ([]*domain.Roadmap, error)
	// SaveProgress persists day completion, progress and status under an
	// optimistic version check and bumps r.Version. A stale version
	// returns domain.ErrConcurrentUpdate.
	SaveProgress(ctx context.Context, r *domain.Roadmap) error
	// DeleteBySource removes every roadmap of a source, with their days and
	// tasks, and returns how many roadmaps went.
	DeleteBySource(ctx context.Context, ownerID, sourceID string) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Task, error)
	ListByRoadmap(ctx context.Context, ownerID, roadmapID string) ([]*domain.Task, error)
	ListByDay(ctx context.Context, roadmapID string, dayNumber int) ([]*domain.Task, error)
	// Complete marks one task complete and reports whether it changed.
	Complete(ctx context.Context, ownerID, id string, now time.Time) (bool, error)
	// CompleteForDay marks every incomplete task of a day complete and
	// returns how many it touched.
	CompleteForDay(ctx context.Context, roadmapID string, dayNumber int, now time.Time) (int, error)
}

type DeckRepo interface {
	Create(ctx context.Context, d *domain.FlashcardDeck) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.FlashcardDeck, error)
	// ListByOwner returns decks newest first, cards included.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.FlashcardDeck, error)
	// SaveCard writes back the review state of one card.
	SaveCard(ctx context.Context, deckID string, c *domain.DeckCard) error
	Delete(ctx context.Context, ownerID, id string) error
}

type MockTestRepo interface {
	Create(ctx context.Context, t *domain.MockTest) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.MockTest, error)
	// ListByOwner returns tests newest first, questions included.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.MockTest, error)
	// Delete removes the test and its attempts.
	Delete(ctx context.Context, ownerID, id string) error
	CreateAttempt(ctx context.Context, a *domain.TestAttempt) error
	// ListAttempts returns a test's attempts, most recent first.
	ListAttempts(ctx context.Context, ownerID, mockTestID string) ([]*domain.TestAttempt, error)
}
