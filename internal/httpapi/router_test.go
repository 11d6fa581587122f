package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/alexanderramin/preplock/internal/repository"
	"github.com/alexanderramin/preplock/internal/service"
	"github.com/alexanderramin/preplock/internal/testutil"
)

type apiEnv struct {
	router  *gin.Engine
	sources *repository.SQLiteSourceRepo
	logs    *observer.ObservedLogs
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	sources := repository.NewSQLiteSourceRepo(database)
	roadmaps := repository.NewSQLiteRoadmapRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	decks := repository.NewSQLiteDeckRepo(database)
	mockTests := repository.NewSQLiteMockTestRepo(database)

	taskSvc := service.NewTaskService(roadmaps, tasks)
	core, logs := observer.New(zapcore.DebugLevel)
	router := NewRouter(RouterConfig{
		Sources:    service.NewSourceService(sources, uow),
		Roadmaps:   service.NewRoadmapService(sources, roadmaps, taskSvc, uow, contract.DefaultWindowDays),
		Completion: service.NewCompletionService(uow, tasks, nil, nil),
		Tasks:      taskSvc,
		Content:    service.NewContentService(sources, roadmaps, tasks, content.NewTemplateGenerator()),
		Study:      service.NewStudyService(uow, sources, decks, mockTests, nil),
		Logger:     logger.FromCore(core),
	})
	return &apiEnv{router: router, sources: sources, logs: logs}
}

func (e *apiEnv) do(t *testing.T, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(OwnerHeader, owner)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *apiEnv) seedSource(t *testing.T) *domain.Source {
	t.Helper()
	src := testutil.NewTestSource("History")
	require.NoError(t, e.sources.Create(context.Background(), src))
	return src
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type roadmapEnvelope struct {
	Roadmap contract.RoadmapView `json:"roadmap"`
	Tasks   []contract.TaskView  `json:"tasks"`
}

func (e *apiEnv) generate(t *testing.T, sourceID string) roadmapEnvelope {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/roadmaps/generate", testutil.TestOwner, map[string]any{
		"sourceId":  sourceID,
		"startDate": "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[roadmapEnvelope](t, w)
}

func TestHealthcheck(t *testing.T) {
	env := newAPIEnv(t)
	w := env.do(t, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRequireOwner(t *testing.T) {
	env := newAPIEnv(t)
	w := env.do(t, http.MethodGet, "/api/roadmaps", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	got := decode[ErrorEnvelope](t, w)
	assert.Equal(t, codeUnauthorized, got.Error.Code)
	assert.Contains(t, got.Error.Message, OwnerHeader)
}

func TestCreateAndGetSource(t *testing.T) {
	env := newAPIEnv(t)
	w := env.do(t, http.MethodPost, "/api/sources", testutil.TestOwner, map[string]any{
		"title":     "World History",
		"exam_date": "2025-03-01",
		"topics": []map[string]any{
			{"name": "Rome", "subtopics": []string{"Republic", "Empire"}, "priority": "high", "estimated_hours": 5},
			{"name": "Greece"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Source contract.SourceView `json:"source"`
	}](t, w)
	assert.Equal(t, "2025-03-01", created.Source.ExamDate)
	require.Len(t, created.Source.Topics, 2)
	assert.Equal(t, "medium", created.Source.Topics[1].Priority)

	w = env.do(t, http.MethodGet, "/api/sources/"+created.Source.ID, testutil.TestOwner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/sources/"+created.Source.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[ErrorEnvelope](t, w).Error.Code)

	w = env.do(t, http.MethodGet, "/api/sources", testutil.TestOwner, nil)
	list := decode[struct {
		Sources []contract.SourceView `json:"sources"`
	}](t, w)
	assert.Len(t, list.Sources, 1)
}

func TestCreateSource_Invalid(t *testing.T) {
	env := newAPIEnv(t)
	w := env.do(t, http.MethodPost, "/api/sources", testutil.TestOwner, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[ErrorEnvelope](t, w).Error.Code)
}

func TestGenerateRoadmap(t *testing.T) {
	env := newAPIEnv(t)
	src := env.seedSource(t)

	got := env.generate(t, src.ID)
	assert.Equal(t, "History - Study Plan", got.Roadmap.Title)
	assert.Equal(t, 14, got.Roadmap.TotalDays)
	require.Len(t, got.Roadmap.Days, 14)
	assert.Equal(t, "2025-01-01", got.Roadmap.Days[0].Date)
	assert.Equal(t, "Revision & Practice", got.Roadmap.Days[13].Focus)
	assert.Len(t, got.Tasks, 7)

	w := env.do(t, http.MethodGet, "/api/roadmaps/active", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/sources/"+src.ID+"/roadmap", testutil.TestOwner, nil)
	assert.Equal(t, got.Roadmap.ID, decode[roadmapEnvelope](t, w).Roadmap.ID)
	w = env.do(t, http.MethodGet, "/api/roadmaps/"+got.Roadmap.ID+"/tasks", testutil.TestOwner, nil)
	assert.Len(t, decode[roadmapEnvelope](t, w).Tasks, 7)
}

func TestGenerateRoadmap_ErrorStatuses(t *testing.T) {
	env := newAPIEnv(t)
	src := env.seedSource(t)
	env.generate(t, src.ID)
	other := env.seedSource(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"duplicate", map[string]any{"sourceId": src.ID}, http.StatusConflict, "DUPLICATE_ACTIVE_ROADMAP"},
		{"unknown source", map[string]any{"sourceId": "nope"}, http.StatusNotFound, "NOT_FOUND"},
		{"missing source", map[string]any{}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad date", map[string]any{"sourceId": other.ID, "startDate": "01/02/2025"}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"too soon", map[string]any{"sourceId": other.ID, "startDate": "2025-01-01", "examDate": "2025-01-04"}, http.StatusBadRequest, "INSUFFICIENT_TIME"},
		{"exam on start", map[string]any{"sourceId": other.ID, "startDate": "2025-01-10", "examDate": "2025-01-10"}, http.StatusBadRequest, "INSUFFICIENT_TIME"},
		{"exam before start", map[string]any{"sourceId": other.ID, "startDate": "2025-01-10", "examDate": "2025-01-05"}, http.StatusBadRequest, "INSUFFICIENT_TIME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/roadmaps/generate", testutil.TestOwner, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[ErrorEnvelope](t, w).Error.Code)
		})
	}
}

func TestCompleteDay(t *testing.T) {
	env := newAPIEnv(t)
	got := env.generate(t, env.seedSource(t).ID)
	path := "/api/roadmaps/" + got.Roadmap.ID + "/days/1/complete"

	w := env.do(t, http.MethodPut, path, testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[contract.CompleteDayView](t, w)
	assert.Equal(t, contract.ProgressView{Completed: 1, Total: 14, Percentage: 7}, first.Progress)
	assert.False(t, first.AlreadyCompleted)
	assert.Equal(t, 1, first.TasksCompleted)
	assert.Equal(t, []string{}, first.Warnings)

	w = env.do(t, http.MethodPut, path, testutil.TestOwner, nil)
	second := decode[contract.CompleteDayView](t, w)
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, first.Progress, second.Progress)

	w = env.do(t, http.MethodPut, "/api/roadmaps/"+got.Roadmap.ID+"/days/99/complete", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodPut, "/api/roadmaps/"+got.Roadmap.ID+"/days/0/complete", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Equal(t, "NOT_FOUND", decode[ErrorEnvelope](t, w).Error.Code)
	w = env.do(t, http.MethodPut, "/api/roadmaps/"+got.Roadmap.ID+"/days/zero/complete", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[ErrorEnvelope](t, w).Error.Code)
	w = env.do(t, http.MethodPut, "/api/roadmaps/missing/days/1/complete", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasksEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	got := env.generate(t, env.seedSource(t).ID)

	w := env.do(t, http.MethodGet, "/api/tasks/today", testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	today := decode[contract.TodayView](t, w)
	// The plan starts in the past, so something is always pending.
	assert.False(t, today.AllComplete)
	assert.NotEmpty(t, today.Tasks)

	w = env.do(t, http.MethodPut, "/api/tasks/"+got.Tasks[0].ID+"/complete", testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[struct {
		Task             contract.TaskView `json:"task"`
		AlreadyCompleted bool              `json:"alreadyCompleted"`
	}](t, w)
	assert.True(t, done.Task.Completed)
	assert.False(t, done.AlreadyCompleted)

	w = env.do(t, http.MethodPut, "/api/tasks/missing/complete", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	src := env.seedSource(t)

	w := env.do(t, http.MethodPost, "/api/sources/"+src.ID+"/flashcards?count=3", testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[struct {
		Flashcards []content.Flashcard `json:"flashcards"`
	}](t, w)
	assert.Len(t, cards.Flashcards, 3)

	w = env.do(t, http.MethodPost, "/api/sources/"+src.ID+"/mock-tests", testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	qs := decode[struct {
		Questions []content.Question `json:"questions"`
	}](t, w)
	assert.Len(t, qs.Questions, content.DefaultQuestionCount)

	w = env.do(t, http.MethodPost, "/api/sources/"+src.ID+"/flashcards?count=lots", testutil.TestOwner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := env.generate(t, src.ID)
	w = env.do(t, http.MethodGet, "/api/roadmaps/"+got.Roadmap.ID+"/days/1/narrative", testutil.TestOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "narrative")
}

func TestRequestLogger(t *testing.T) {
	env := newAPIEnv(t)
	env.do(t, http.MethodGet, "/api/roadmaps/missing", testutil.TestOwner, nil)

	entries := env.logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/roadmaps/:id", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, testutil.TestOwner, fields["user_id"])
}
