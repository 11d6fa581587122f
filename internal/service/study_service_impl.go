package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/repository"
)

type studyService struct {
	uow       db.UnitOfWork
	sources   repository.SourceRepo
	decks     repository.DeckRepo
	tests     repository.MockTestRepo
	generator content.Generator
	observer  UseCaseObserver
}

func NewStudyService(
	uow db.UnitOfWork,
	sources repository.SourceRepo,
	decks repository.DeckRepo,
	tests repository.MockTestRepo,
	generator content.Generator,
	observers ...UseCaseObserver,
) StudyService {
	if generator == nil {
		generator = content.NewTemplateGenerator()
	}
	return &studyService{
		uow:       uow,
		sources:   sources,
		decks:     decks,
		tests:     tests,
		generator: generator,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *studyService) CreateDeck(ctx context.Context, ownerID, sourceID string, count int) (deck *domain.FlashcardDeck, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": ownerID, "source_id": sourceID}
		if deck != nil {
			fields["deck_id"] = deck.ID
			fields["card_count"] = len(deck.Cards)
		}
		observe(ctx, s.observer, "study.create_deck", startedAt, &err, fields)
	}()

	src, err := s.sources.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}
	generated, err := s.generator.Flashcards(ctx, content.FlashcardRequest{
		Title:   src.Title,
		RawText: src.RawText,
		Topics:  src.Topics,
		Count:   count,
	})
	if err != nil {
		return nil, err
	}
	if len(generated) == 0 {
		return nil, domain.ErrEmptyTopics
	}

	cards := make([]domain.DeckCard, len(generated))
	for i, c := range generated {
		cards[i] = domain.DeckCard{Index: i, Topic: c.Topic, Front: c.Front, Back: c.Back}
	}
	deck = &domain.FlashcardDeck{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		SourceID:  src.ID,
		Title:     "Flashcards - " + src.Title,
		Cards:     cards,
		CreatedAt: startedAt,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteDeckRepo(tx).Create(ctx, deck)
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *studyService) GetDeck(ctx context.Context, ownerID, id string) (*domain.FlashcardDeck, error) {
	return s.decks.GetByID(ctx, ownerID, id)
}

func (s *studyService) ListDecks(ctx context.Context, ownerID string) ([]*domain.FlashcardDeck, error) {
	return s.decks.ListByOwner(ctx, ownerID)
}

func (s *studyService) ReviewCard(ctx context.Context, req contract.ReviewCardRequest) (deck *domain.FlashcardDeck, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "study.review_card", startedAt, &err, map[string]any{
			"owner_id": req.OwnerID, "deck_id": req.DeckID, "card": req.CardIndex, "mastered": req.Mastered,
		})
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteDeckRepo(tx)
		loaded, err := repo.GetByID(ctx, req.OwnerID, req.DeckID)
		if err != nil {
			return err
		}
		card, err := loaded.Card(req.CardIndex)
		if err != nil {
			return err
		}
		card.Review(req.Mastered, now)
		if err := repo.SaveCard(ctx, loaded.ID, card); err != nil {
			return err
		}
		deck = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *studyService) DeleteDeck(ctx context.Context, ownerID, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "study.delete_deck", startedAt, &err, map[string]any{"owner_id": ownerID, "deck_id": id})
	}()
	return s.decks.Delete(ctx, ownerID, id)
}

func (s *studyService) CreateMockTest(ctx context.Context, ownerID, sourceID string, count int) (test *domain.MockTest, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": ownerID, "source_id": sourceID}
		if test != nil {
			fields["mock_test_id"] = test.ID
			fields["question_count"] = len(test.Questions)
		}
		observe(ctx, s.observer, "study.create_mock_test", startedAt, &err, fields)
	}()

	src, err := s.sources.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}
	generated, err := s.generator.MockTest(ctx, content.MockTestRequest{
		Title:   src.Title,
		RawText: src.RawText,
		Topics:  src.Topics,
		Count:   count,
	})
	if err != nil {
		return nil, err
	}
	if len(generated) == 0 {
		return nil, domain.ErrEmptyTopics
	}

	questions := make([]domain.TestQuestion, len(generated))
	for i, q := range generated {
		questions[i] = domain.TestQuestion{
			Topic:       q.Topic,
			Prompt:      q.Prompt,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
			Explanation: q.Explanation,
		}
	}
	names := make([]string, 0, len(src.Topics))
	for _, t := range src.Topics {
		names = append(names, strings.TrimSpace(t.Name))
	}
	test = &domain.MockTest{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		SourceID:        src.ID,
		Title:           "Mock Test - " + src.Title,
		Topics:          names,
		Questions:       questions,
		DurationMinutes: domain.TestDuration(len(questions)),
		CreatedAt:       startedAt,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMockTestRepo(tx).Create(ctx, test)
	})
	if err != nil {
		return nil, err
	}
	return test, nil
}

func (s *studyService) GetMockTest(ctx context.Context, ownerID, id string) (*domain.MockTest, error) {
	return s.tests.GetByID(ctx, ownerID, id)
}

func (s *studyService) ListMockTests(ctx context.Context, ownerID string) ([]*domain.MockTest, error) {
	return s.tests.ListByOwner(ctx, ownerID)
}

func (s *studyService) SubmitMockTest(ctx context.Context, req contract.SubmitTestRequest) (resp *contract.SubmitTestResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": req.OwnerID, "mock_test_id": req.MockTestID}
		if resp != nil {
			fields["attempt_id"] = resp.Attempt.ID
			fields["percentage"] = resp.Attempt.Percentage
		}
		observe(ctx, s.observer, "study.submit_mock_test", startedAt, &err, fields)
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}

	test, err := s.tests.GetByID(ctx, req.OwnerID, req.MockTestID)
	if err != nil {
		return nil, err
	}
	attempt, err := test.Grade(uuid.New().String(), req.Answers, req.TimeSpentSeconds, now)
	if err != nil {
		return nil, err
	}
	if err := s.tests.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return &contract.SubmitTestResponse{Attempt: attempt, Test: test}, nil
}

func (s *studyService) ListAttempts(ctx context.Context, ownerID, mockTestID string) ([]*domain.TestAttempt, error) {
	if _, err := s.tests.GetByID(ctx, ownerID, mockTestID); err != nil {
		return nil, err
	}
	return s.tests.ListAttempts(ctx, ownerID, mockTestID)
}

func (s *studyService) DeleteMockTest(ctx context.Context, ownerID, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "study.delete_mock_test", startedAt, &err, map[string]any{"owner_id": ownerID, "mock_test_id": id})
	}()
	return s.tests.Delete(ctx, ownerID, id)
}
