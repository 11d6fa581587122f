package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/lock"
	"github.com/alexanderramin/preplock/internal/repository"
	"github.com/alexanderramin/preplock/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *sql.DB
	uow        db.UnitOfWork
	sourceRepo *repository.SQLiteSourceRepo
	roadmaps   *repository.SQLiteRoadmapRepo
	taskRepo   *repository.SQLiteTaskRepo
	deckRepo   *repository.SQLiteDeckRepo
	testRepo   *repository.SQLiteMockTestRepo
	recorder   *recordingObserver

	sources    SourceService
	roadmapSvc RoadmapService
	tasks      TaskService
	completion CompletionService
	content    ContentService
	study      StudyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWithDB(t, testutil.NewTestDB(t))
}

func newEnvWithDB(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()
	e := &testEnv{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		sourceRepo: repository.NewSQLiteSourceRepo(database),
		roadmaps:   repository.NewSQLiteRoadmapRepo(database),
		taskRepo:   repository.NewSQLiteTaskRepo(database),
		deckRepo:   repository.NewSQLiteDeckRepo(database),
		testRepo:   repository.NewSQLiteMockTestRepo(database),
		recorder:   &recordingObserver{},
	}
	e.sources = NewSourceService(e.sourceRepo, e.uow, e.recorder)
	e.tasks = NewTaskService(e.roadmaps, e.taskRepo, e.recorder)
	e.roadmapSvc = NewRoadmapService(e.sourceRepo, e.roadmaps, e.tasks, e.uow, contract.DefaultWindowDays, e.recorder)
	e.completion = NewCompletionService(e.uow, e.taskRepo, lock.NewLocal(), nil, e.recorder)
	e.content = NewContentService(e.sourceRepo, e.roadmaps, e.taskRepo, content.NewTemplateGenerator(), e.recorder)
	e.study = NewStudyService(e.uow, e.sourceRepo, e.deckRepo, e.testRepo, content.NewTemplateGenerator(), e.recorder)
	return e
}

func (e *testEnv) seedSource(t *testing.T, opts ...testutil.SourceOption) *domain.Source {
	t.Helper()
	src := testutil.NewTestSource("Biology", opts...)
	require.NoError(t, e.sourceRepo.Create(context.Background(), src))
	return src
}

// generate builds a roadmap for src starting at testutil.TestStart.
func (e *testEnv) generate(t *testing.T, src *domain.Source) *contract.GenerateRoadmapResponse {
	t.Helper()
	req := contract.NewGenerateRoadmapRequest(src.OwnerID, src.ID)
	req.StartDate = timePtr(testutil.TestStart)
	resp, err := e.roadmapSvc.Generate(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) completeDay(t *testing.T, roadmapID string, day int) *contract.CompleteDayResponse {
	t.Helper()
	resp, err := e.completion.CompleteDay(context.Background(), contract.CompleteDayRequest{
		OwnerID: testutil.TestOwner, RoadmapID: roadmapID, DayNumber: day,
	})
	require.NoError(t, err)
	return resp
}

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(n int) *int { return &n }

func dayOf(n int) time.Time { return testutil.TestStart.AddDate(0, 0, n-1).Add(9 * time.Hour) }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) named(name string) []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
