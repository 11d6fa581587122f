package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/lock"
	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/alexanderramin/preplock/internal/repository"
)

// maxSaveAttempts bounds retries after a lost version check.
const maxSaveAttempts = 3

type completionService struct {
	uow      db.UnitOfWork
	tasks    repository.TaskRepo
	locker   lock.Locker
	log      *logger.Logger
	observer UseCaseObserver
}

// NewCompletionService builds the day completion use case. A nil locker
// uses an in-process lock; a nil log discards warnings.
func NewCompletionService(
	uow db.UnitOfWork,
	tasks repository.TaskRepo,
	locker lock.Locker,
	log *logger.Logger,
	observers ...UseCaseObserver,
) CompletionService {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &completionService{
		uow:      uow,
		tasks:    tasks,
		locker:   locker,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *completionService) CompleteDay(ctx context.Context, req contract.CompleteDayRequest) (resp *contract.CompleteDayResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{
			"owner_id":   req.OwnerID,
			"roadmap_id": req.RoadmapID,
			"day":        req.DayNumber,
		}
		if resp != nil {
			fields["already_completed"] = resp.AlreadyCompleted
			fields["percentage"] = resp.Progress.Percentage
			fields["tasks_completed"] = resp.TasksCompleted
		}
		observe(ctx, s.observer, "roadmap.complete_day", startedAt, &err, fields)
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}

	release, err := s.locker.Acquire(ctx, lock.RoadmapKey(req.RoadmapID))
	if err != nil {
		return nil, fmt.Errorf("locking roadmap %s: %w", req.RoadmapID, err)
	}
	defer func() {
		if rerr := release(); rerr != nil {
			s.log.Warn("roadmap_lock_release_failed", "roadmap_id", req.RoadmapID, "error", rerr.Error())
		}
	}()

	var (
		rm      *domain.Roadmap
		changed bool
	)
	for attempt := 1; ; attempt++ {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			roadmaps := repository.NewSQLiteRoadmapRepo(tx)
			loaded, err := roadmaps.GetByID(ctx, req.OwnerID, req.RoadmapID)
			if err != nil {
				return err
			}
			changed, err = loaded.CompleteDay(req.DayNumber, now)
			if err != nil {
				return err
			}
			if changed {
				if err := roadmaps.SaveProgress(ctx, loaded); err != nil {
					return err
				}
			}
			rm = loaded
			return nil
		})
		if err == nil || !errors.Is(err, domain.ErrConcurrentUpdate) || attempt >= maxSaveAttempts {
			break
		}
		s.log.Debug("roadmap_version_conflict", "roadmap_id", req.RoadmapID, "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}

	resp = &contract.CompleteDayResponse{
		RoadmapID:        rm.ID,
		DayNumber:        req.DayNumber,
		Progress:         rm.Progress,
		Status:           rm.Status,
		AlreadyCompleted: !changed,
		Warnings:         []string{},
	}

	// Runs on repeat calls too, so a cascade that failed earlier catches up.
	n, cerr := s.tasks.CompleteForDay(ctx, rm.ID, req.DayNumber, now)
	if cerr != nil {
		s.log.Warn("task_cascade_failed",
			"roadmap_id", rm.ID, "day", req.DayNumber, "error", cerr.Error())
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("tasks for day %d were not marked complete: %v", req.DayNumber, cerr))
		return resp, nil
	}
	resp.TasksCompleted = n
	return resp, nil
}
