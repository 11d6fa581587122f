package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/service"
)

type RoadmapHandler struct {
	roadmaps   service.RoadmapService
	completion service.CompletionService
	tasks      service.TaskService
}

func NewRoadmapHandler(roadmaps service.RoadmapService, completion service.CompletionService, tasks service.TaskService) *RoadmapHandler {
	return &RoadmapHandler{roadmaps: roadmaps, completion: completion, tasks: tasks}
}

type generateBody struct {
	SourceID   string `json:"sourceId"`
	Title      string `json:"title"`
	StartDate  string `json:"startDate"`
	ExamDate   string `json:"examDate"`
	WindowDays *int   `json:"windowDays"`
}

// POST /api/roadmaps/generate
func (h *RoadmapHandler) Generate(c *gin.Context) {
	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, string(contract.CodeInvalidRequest), err)
		return
	}

	req := contract.NewGenerateRoadmapRequest(ownerID(c), body.SourceID)
	req.Title = body.Title
	req.WindowDays = body.WindowDays
	var err error
	if req.StartDate, err = optionalDate("startDate", body.StartDate); err != nil {
		respondUseCaseError(c, err)
		return
	}
	if req.ExamDate, err = optionalDate("examDate", body.ExamDate); err != nil {
		respondUseCaseError(c, err)
		return
	}

	resp, err := h.roadmaps.Generate(c.Request.Context(), req)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"roadmap": contract.NewRoadmapView(resp.Roadmap),
		"tasks":   contract.NewTaskViews(resp.Tasks),
	})
}

// GET /api/roadmaps
func (h *RoadmapHandler) List(c *gin.Context) {
	roadmaps, err := h.roadmaps.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	views := make([]contract.RoadmapView, len(roadmaps))
	for i, r := range roadmaps {
		views[i] = contract.NewRoadmapView(r)
	}
	RespondOK(c, gin.H{"roadmaps": views})
}

// GET /api/roadmaps/active
func (h *RoadmapHandler) GetActive(c *gin.Context) {
	rm, err := h.roadmaps.GetActive(c.Request.Context(), ownerID(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap": contract.NewRoadmapView(rm)})
}

// GET /api/roadmaps/:id
func (h *RoadmapHandler) Get(c *gin.Context) {
	rm, err := h.roadmaps.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap": contract.NewRoadmapView(rm)})
}

// GET /api/sources/:id/roadmap
func (h *RoadmapHandler) GetBySource(c *gin.Context) {
	rm, err := h.roadmaps.GetBySource(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"roadmap": contract.NewRoadmapView(rm)})
}

// PUT /api/roadmaps/:id/days/:day/complete
func (h *RoadmapHandler) CompleteDay(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	resp, err := h.completion.CompleteDay(c.Request.Context(), contract.CompleteDayRequest{
		OwnerID:   ownerID(c),
		RoadmapID: c.Param("id"),
		DayNumber: day,
	})
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, contract.NewCompleteDayView(resp))
}

// GET /api/roadmaps/:id/tasks
func (h *RoadmapHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListByRoadmap(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"tasks": contract.NewTaskViews(tasks)})
}

func optionalDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, &contract.RequestError{
			Code:    contract.CodeInvalidRequest,
			Field:   field,
			Message: "expected YYYY-MM-DD, got " + strconv.Quote(s),
		}
	}
	return &t, nil
}

var errBadDay = errors.New("day must be an integer")

func dayParam(c *gin.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		return 0, &contract.RequestError{Code: contract.CodeInvalidRequest, Field: "day", Message: errBadDay.Error()}
	}
	return n, nil
}
