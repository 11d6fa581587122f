package contract

import (
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// DefaultWindowDays is how many leading days get tasks at generation.
const DefaultWindowDays = 7

// MaxWindowDays caps the task window.
const MaxWindowDays = 31

type GenerateRoadmapRequest struct {
	OwnerID  string
	SourceID string
	// Title defaults to "<source title> - Study Plan".
	Title string
	// StartDate defaults to today (UTC).
	StartDate *time.Time
	// ExamDate overrides the source's exam date.
	ExamDate *time.Time
	// WindowDays defaults to DefaultWindowDays.
	WindowDays *int
	Now        *time.Time
}

func NewGenerateRoadmapRequest(ownerID, sourceID string) GenerateRoadmapRequest {
	return GenerateRoadmapRequest{OwnerID: ownerID, SourceID: sourceID}
}

func (r GenerateRoadmapRequest) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return invalidRequest("owner_id", "owner is required")
	}
	if strings.TrimSpace(r.SourceID) == "" {
		return invalidRequest("source_id", "source is required")
	}
	if r.WindowDays != nil && (*r.WindowDays < 0 || *r.WindowDays > MaxWindowDays) {
		return invalidRequest("window_days", "must be between 0 and %d, got %d", MaxWindowDays, *r.WindowDays)
	}
	return nil
}

type GenerateRoadmapResponse struct {
	Roadmap *domain.Roadmap
	Tasks   []*domain.Task
}

type CompleteDayRequest struct {
	OwnerID   string
	RoadmapID string
	DayNumber int
	Now       *time.Time
}

func (r CompleteDayRequest) Validate() error {
	if strings.TrimSpace(r.OwnerID) == "" {
		return invalidRequest("owner_id", "owner is required")
	}
	if strings.TrimSpace(r.RoadmapID) == "" {
		return invalidRequest("roadmap_id", "roadmap is required")
	}
	return nil
}

type CompleteDayResponse struct {
	RoadmapID string
	DayNumber int
	Progress  domain.Progress
	Status    domain.RoadmapStatus
	// AlreadyCompleted is true when the day was complete before the call.
	AlreadyCompleted bool
	// TasksCompleted counts tasks flipped by the cascade.
	TasksCompleted int
	// Warnings carries cascade failures; the day itself stays complete.
	Warnings []string
}
