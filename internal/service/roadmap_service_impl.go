package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/repository"
	"github.com/alexanderramin/preplock/internal/scheduler"
	"github.com/google/uuid"
)

// TitleSuffix is appended to the source title when no roadmap title is given.
const TitleSuffix = " - Study Plan"

type roadmapService struct {
	sources    repository.SourceRepo
	roadmaps   repository.RoadmapRepo
	tasks      TaskService
	uow        db.UnitOfWork
	windowDays int
	observer   UseCaseObserver
}

// NewRoadmapService builds the generation and lookup use cases. windowDays
// is the default number of leading days that get tasks; values outside
// 0..contract.MaxWindowDays fall back to contract.DefaultWindowDays.
func NewRoadmapService(
	sources repository.SourceRepo,
	roadmaps repository.RoadmapRepo,
	tasks TaskService,
	uow db.UnitOfWork,
	windowDays int,
	observers ...UseCaseObserver,
) RoadmapService {
	if windowDays < 0 || windowDays > contract.MaxWindowDays {
		windowDays = contract.DefaultWindowDays
	}
	return &roadmapService{
		sources:    sources,
		roadmaps:   roadmaps,
		tasks:      tasks,
		uow:        uow,
		windowDays: windowDays,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *roadmapService) Generate(ctx context.Context, req contract.GenerateRoadmapRequest) (resp *contract.GenerateRoadmapResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": req.OwnerID, "source_id": req.SourceID}
		if resp != nil {
			fields["roadmap_id"] = resp.Roadmap.ID
			fields["total_days"] = resp.Roadmap.TotalDays
			fields["task_count"] = len(resp.Tasks)
		}
		observe(ctx, s.observer, "roadmap.generate", startedAt, &err, fields)
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}

	src, err := s.sources.GetByID(ctx, req.OwnerID, req.SourceID)
	if err != nil {
		return nil, err
	}

	// The partial unique index is the real guard; this check only gives a
	// better error in the common case.
	existing, err := s.roadmaps.GetActiveBySource(ctx, req.OwnerID, req.SourceID)
	switch {
	case err == nil:
		return nil, &domain.DuplicateActiveRoadmapError{OwnerID: req.OwnerID, SourceID: req.SourceID, ExistingID: existing.ID}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("checking active roadmap: %w", err)
	}

	start := domain.CalendarDay(now)
	if req.StartDate != nil {
		start = domain.CalendarDay(*req.StartDate)
	}
	exam := src.ExamDate
	if req.ExamDate != nil {
		exam = domain.CalendarDay(*req.ExamDate)
	}

	days, err := scheduler.Allocate(src.Topics, start, exam)
	if err != nil {
		return nil, err
	}

	title := domain.CoalesceStr(strings.TrimSpace(req.Title), src.Title+TitleSuffix)
	rm, err := domain.NewRoadmap(uuid.New().String(), req.OwnerID, src.ID, title, start, exam, days, now)
	if err != nil {
		return nil, err
	}

	window := domain.IntOrDefault(req.WindowDays, s.windowDays)
	if window > len(rm.Days) {
		window = len(rm.Days)
	}
	dayNumbers := make([]int, window)
	for i := range dayNumbers {
		dayNumbers[i] = i + 1
	}

	var tasks []*domain.Task
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteRoadmapRepo(tx).Create(ctx, rm); err != nil {
			return err
		}
		var err error
		tasks, err = s.tasks.MaterializeWindow(ctx, repository.NewSQLiteTaskRepo(tx), rm, dayNumbers)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &contract.GenerateRoadmapResponse{Roadmap: rm, Tasks: tasks}, nil
}

func (s *roadmapService) Get(ctx context.Context, ownerID, id string) (*domain.Roadmap, error) {
	return s.roadmaps.GetByID(ctx, ownerID, id)
}

func (s *roadmapService) GetActive(ctx context.Context, ownerID string) (*domain.Roadmap, error) {
	return s.roadmaps.GetActive(ctx, ownerID)
}

func (s *roadmapService) GetBySource(ctx context.Context, ownerID, sourceID string) (*domain.Roadmap, error) {
	if _, err := s.sources.GetByID(ctx, ownerID, sourceID); err != nil {
		return nil, err
	}
	return s.roadmaps.GetLatestBySource(ctx, ownerID, sourceID)
}

func (s *roadmapService) List(ctx context.Context, ownerID string) ([]*domain.Roadmap, error) {
	return s.roadmaps.ListByOwner(ctx, ownerID)
}
