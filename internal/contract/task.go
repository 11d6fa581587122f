package contract

import (
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

type TodayRequest struct {
	OwnerID string
	Now     *time.Time
}

func NewTodayRequest(ownerID string) TodayRequest {
	return TodayRequest{OwnerID: ownerID}
}

// TodayItem is one pending or finished unit of today's work. It wraps a
// task when the day has tasks, otherwise the day itself.
type TodayItem struct {
	RoadmapID    string
	RoadmapTitle string
	DayNumber    int
	Date         time.Time
	TaskID       string
	Title        string
	Description  string
	Topics       []string
	Duration     string
	Priority     domain.Priority
	Type         domain.TaskType
	Completed    bool
	// Fallback marks work pulled forward because nothing is due today.
	Fallback bool
}

type TodayResponse struct {
	Date      time.Time
	Items     []TodayItem
	Pending   int
	Completed int
	Total     int
	// AllComplete is true when nothing is pending.
	AllComplete bool
}

type CompleteTaskResponse struct {
	Task             *domain.Task
	AlreadyCompleted bool
}
