package contract

import (
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// Views are the JSON shapes shared by the HTTP API and `--format json`.

type TopicView struct {
	Name           string   `json:"name"`
	Subtopics      []string `json:"subtopics"`
	Priority       string   `json:"priority"`
	EstimatedHours float64  `json:"estimatedHours"`
}

type SourceView struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	ExamDate  string      `json:"examDate"`
	RawText   string      `json:"rawText,omitempty"`
	Topics    []TopicView `json:"topics"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ProgressView struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type DayView struct {
	Day         int        `json:"day"`
	Date        string     `json:"date"`
	Kind        string     `json:"kind"`
	Topics      []string   `json:"topics"`
	Subtopics   []string   `json:"subtopics"`
	Focus       string     `json:"focus"`
	Duration    string     `json:"duration"`
	Hours       float64    `json:"hours"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes,omitempty"`
}

type RoadmapView struct {
	ID        string       `json:"id"`
	SourceID  string       `json:"sourceId"`
	Title     string       `json:"title"`
	ExamDate  string       `json:"examDate"`
	StartDate string       `json:"startDate"`
	TotalDays int          `json:"totalDays"`
	Days      []DayView    `json:"roadmap"`
	Progress  ProgressView `json:"progress"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type TaskView struct {
	ID            string     `json:"id"`
	RoadmapID     string     `json:"roadmapId"`
	Day           int        `json:"day"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Topics        []string   `json:"topics"`
	Duration      string     `json:"duration"`
	Priority      string     `json:"priority"`
	Type          string     `json:"type"`
	ScheduledDate string     `json:"scheduledDate"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt"`
}

type TodayItemView struct {
	RoadmapID    string   `json:"roadmapId"`
	RoadmapTitle string   `json:"roadmapTitle"`
	Day          int      `json:"day"`
	Date         string   `json:"date"`
	TaskID       string   `json:"taskId,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	Duration     string   `json:"duration"`
	Priority     string   `json:"priority"`
	Type         string   `json:"type"`
	Completed    bool     `json:"completed"`
	Fallback     bool     `json:"fallback"`
}

type TodayView struct {
	Date        string          `json:"date"`
	Tasks       []TodayItemView `json:"tasks"`
	Pending     int             `json:"pending"`
	Completed   int             `json:"completed"`
	Total       int             `json:"total"`
	AllComplete bool            `json:"allComplete"`
}

type CompleteDayView struct {
	RoadmapID        string       `json:"roadmapId"`
	Day              int          `json:"day"`
	Progress         ProgressView `json:"progress"`
	Status           string       `json:"status"`
	AlreadyCompleted bool         `json:"alreadyCompleted"`
	TasksCompleted   int          `json:"tasksCompleted"`
	Warnings         []string     `json:"warnings"`
}

func NewSourceView(s *domain.Source) SourceView {
	topics := make([]TopicView, len(s.Topics))
	for i, t := range s.Topics {
		topics[i] = TopicView{
			Name:           t.Name,
			Subtopics:      nonNil(t.Subtopics),
			Priority:       string(t.Priority),
			EstimatedHours: t.EstimatedHours,
		}
	}
	return SourceView{
		ID:        s.ID,
		Title:     s.Title,
		ExamDate:  s.ExamDate.Format(domain.DateLayout),
		RawText:   s.RawText,
		Topics:    topics,
		CreatedAt: s.CreatedAt,
	}
}

func NewProgressView(p domain.Progress) ProgressView {
	return ProgressView{Completed: p.Completed, Total: p.Total, Percentage: p.Percentage}
}

func NewRoadmapView(r *domain.Roadmap) RoadmapView {
	days := make([]DayView, len(r.Days))
	for i := range r.Days {
		d := &r.Days[i]
		days[i] = DayView{
			Day:         d.Number,
			Date:        d.Date.Format(domain.DateLayout),
			Kind:        string(d.Kind),
			Topics:      nonNil(d.Topics),
			Subtopics:   nonNil(d.Subtopics),
			Focus:       d.Focus,
			Duration:    d.DurationLabel,
			Hours:       d.Hours,
			Priority:    string(d.Priority),
			Completed:   d.Completed,
			CompletedAt: d.CompletedAt,
			Notes:       d.Notes,
		}
	}
	return RoadmapView{
		ID:        r.ID,
		SourceID:  r.SourceID,
		Title:     r.Title,
		ExamDate:  r.ExamDate.Format(domain.DateLayout),
		StartDate: r.StartDate.Format(domain.DateLayout),
		TotalDays: r.TotalDays,
		Days:      days,
		Progress:  NewProgressView(r.Progress),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewTaskView(t *domain.Task) TaskView {
	return TaskView{
		ID:            t.ID,
		RoadmapID:     t.RoadmapID,
		Day:           t.DayNumber,
		Title:         t.Title,
		Description:   t.Description,
		Topics:        nonNil(t.Topics),
		Duration:      t.Duration,
		Priority:      string(t.Priority),
		Type:          string(t.Type),
		ScheduledDate: t.ScheduledDate.Format(domain.DateLayout),
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
	}
}

func NewTaskViews(tasks []*domain.Task) []TaskView {
	out := make([]TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = NewTaskView(t)
	}
	return out
}

func NewTodayView(r *TodayResponse) TodayView {
	items := make([]TodayItemView, len(r.Items))
	for i, it := range r.Items {
		items[i] = TodayItemView{
			RoadmapID:    it.RoadmapID,
			RoadmapTitle: it.RoadmapTitle,
			Day:          it.DayNumber,
			Date:         it.Date.Format(domain.DateLayout),
			TaskID:       it.TaskID,
			Title:        it.Title,
			Description:  it.Description,
			Topics:       nonNil(it.Topics),
			Duration:     it.Duration,
			Priority:     string(it.Priority),
			Type:         string(it.Type),
			Completed:    it.Completed,
			Fallback:     it.Fallback,
		}
	}
	return TodayView{
		Date:        r.Date.Format(domain.DateLayout),
		Tasks:       items,
		Pending:     r.Pending,
		Completed:   r.Completed,
		Total:       r.Total,
		AllComplete: r.AllComplete,
	}
}

func NewCompleteDayView(r *CompleteDayResponse) CompleteDayView {
	return CompleteDayView{
		RoadmapID:        r.RoadmapID,
		Day:              r.DayNumber,
		Progress:         NewProgressView(r.Progress),
		Status:           string(r.Status),
		AlreadyCompleted: r.AlreadyCompleted,
		TasksCompleted:   r.TasksCompleted,
		Warnings:         nonNil(r.Warnings),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
