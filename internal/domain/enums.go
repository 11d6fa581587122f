package domain

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// Rank orders priority tiers for scheduling: lower is scheduled first.
// Unknown values sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

type RoadmapStatus string

const (
	RoadmapActive    RoadmapStatus = "active"
	RoadmapCompleted RoadmapStatus = "completed"
	RoadmapPaused    RoadmapStatus = "paused"
)

type DayKind string

const (
	DayStudy    DayKind = "study"
	DayBuffer   DayKind = "buffer"
	DayRevision DayKind = "revision"
)

type TaskType string

const (
	TaskStudy    TaskType = "study"
	TaskPractice TaskType = "practice"
	TaskRevision TaskType = "revision"
	TaskMockTest TaskType = "mock-test"
)

// TaskTypeForDay maps a day kind to the task type its snapshot carries.
func TaskTypeForDay(k DayKind) TaskType {
	switch k {
	case DayBuffer:
		return TaskPractice
	case DayRevision:
		return TaskRevision
	default:
		return TaskStudy
	}
}

// Fixed topic labels for synthetic days.
const (
	BufferTopic   = "Review/Buffer"
	RevisionTopic = "Revision & Practice"
)
