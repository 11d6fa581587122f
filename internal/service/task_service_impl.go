package service

import (
	"context"
	"time"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	roadmaps repository.RoadmapRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTaskService(roadmaps repository.RoadmapRepo, tasks repository.TaskRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{roadmaps: roadmaps, tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) MaterializeWindow(ctx context.Context, tasks repository.TaskRepo, r *domain.Roadmap, dayNumbers []int) ([]*domain.Task, error) {
	now := time.Now().UTC()
	out := make([]*domain.Task, 0, len(dayNumbers))
	for _, n := range dayNumbers {
		d, err := r.FindDay(n)
		if err != nil {
			return nil, err
		}
		t := domain.NewTaskFromDay(uuid.New().String(), r, d, now)
		if err := tasks.Create(ctx, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *taskService) CompleteTask(ctx context.Context, ownerID, taskID string) (resp *contract.CompleteTaskResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": ownerID, "task_id": taskID}
		if resp != nil {
			fields["already_completed"] = resp.AlreadyCompleted
		}
		observe(ctx, s.observer, "task.complete", startedAt, &err, fields)
	}()

	changed, err := s.tasks.Complete(ctx, ownerID, taskID, startedAt)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	return &contract.CompleteTaskResponse{Task: t, AlreadyCompleted: !changed}, nil
}

func (s *taskService) TodayTasks(ctx context.Context, req contract.TodayRequest) (resp *contract.TodayResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": req.OwnerID}
		if resp != nil {
			fields["pending"] = resp.Pending
			fields["total"] = resp.Total
		}
		observe(ctx, s.observer, "task.today", startedAt, &err, fields)
	}()

	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}
	resp = &contract.TodayResponse{Date: domain.CalendarDay(now), Items: []contract.TodayItem{}}

	active, err := s.roadmaps.ListActive(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	for _, rm := range active {
		tasks, err := s.tasks.ListByRoadmap(ctx, req.OwnerID, rm.ID)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, todayItems(rm, tasksByDay(tasks), now)...)
	}

	for _, it := range resp.Items {
		if it.Completed {
			resp.Completed++
		} else {
			resp.Pending++
		}
	}
	resp.Total = len(resp.Items)
	resp.AllComplete = resp.Pending == 0
	return resp, nil
}

func (s *taskService) ListByRoadmap(ctx context.Context, ownerID, roadmapID string) ([]*domain.Task, error) {
	if _, err := s.roadmaps.GetByID(ctx, ownerID, roadmapID); err != nil {
		return nil, err
	}
	return s.tasks.ListByRoadmap(ctx, ownerID, roadmapID)
}

func tasksByDay(tasks []*domain.Task) map[int][]*domain.Task {
	m := make(map[int][]*domain.Task)
	for _, t := range tasks {
		m[t.DayNumber] = append(m[t.DayNumber], t)
	}
	return m
}

// todayItems picks the work a roadmap contributes to today: the day dated
// today while it is incomplete, otherwise the earliest day with anything
// left to do.
func todayItems(rm *domain.Roadmap, byDay map[int][]*domain.Task, now time.Time) []contract.TodayItem {
	if d, ok := rm.DayOn(now); ok && !d.Completed {
		return dayItems(rm, d, byDay[d.Number], false)
	}
	for i := range rm.Days {
		d := &rm.Days[i]
		if !d.Completed || hasIncomplete(byDay[d.Number]) {
			return dayItems(rm, d, byDay[d.Number], true)
		}
	}
	return nil
}

func hasIncomplete(tasks []*domain.Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return true
		}
	}
	return false
}

func dayItems(rm *domain.Roadmap, d *domain.Day, tasks []*domain.Task, fallback bool) []contract.TodayItem {
	if len(tasks) == 0 {
		return []contract.TodayItem{{
			RoadmapID:    rm.ID,
			RoadmapTitle: rm.Title,
			DayNumber:    d.Number,
			Date:         d.Date,
			Title:        domain.TaskTitle(d),
			Description:  d.Focus,
			Topics:       d.Topics,
			Duration:     d.DurationLabel,
			Priority:     d.Priority,
			Type:         domain.TaskTypeForDay(d.Kind),
			Completed:    d.Completed,
			Fallback:     fallback,
		}}
	}
	items := make([]contract.TodayItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, contract.TodayItem{
			RoadmapID:    rm.ID,
			RoadmapTitle: rm.Title,
			DayNumber:    t.DayNumber,
			Date:         t.ScheduledDate,
			TaskID:       t.ID,
			Title:        t.Title,
			Description:  t.Description,
			Topics:       t.Topics,
			Duration:     t.Duration,
			Priority:     t.Priority,
			Type:         t.Type,
			Completed:    t.Completed,
			Fallback:     fallback,
		})
	}
	return items
}
