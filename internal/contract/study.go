package contract

import (
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

type ReviewCardRequest struct {
	OwnerID   string
	DeckID    string
	CardIndex int
	// Mastered marks the card mastered as well as reviewed.
	Mastered bool
	Now      *time.Time
}

func (r ReviewCardRequest) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return invalidRequest("owner_id", "owner is required")
	}
	if strings.TrimSpace(r.DeckID) == "" {
		return invalidRequest("deck_id", "deck is required")
	}
	return nil
}

type SubmitTestRequest struct {
	OwnerID          string
	MockTestID       string
	Answers          []domain.AnswerSubmission
	TimeSpentSeconds int
	Now              *time.Time
}

func (r SubmitTestRequest) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return invalidRequest("owner_id", "owner is required")
	}
	if strings.TrimSpace(r.MockTestID) == "" {
		return invalidRequest("mock_test_id", "mock test is required")
	}
	if len(r.Answers) == 0 {
		return invalidRequest("answers", "at least one answer is required")
	}
	return nil
}

type SubmitTestResponse struct {
	Attempt *domain.TestAttempt
	Test    *domain.MockTest
}

type DeleteSourceResponse struct {
	SourceID        string
	RoadmapsDeleted int
}
