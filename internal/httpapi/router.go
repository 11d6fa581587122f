package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/alexanderramin/preplock/internal/service"
)

type RouterConfig struct {
	Sources    service.SourceService
	Roadmaps   service.RoadmapService
	Completion service.CompletionService
	Tasks      service.TaskService
	Content    service.ContentService
	Study      service.StudyService
	Logger     *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.Use(RequireOwner())

	if cfg.Sources != nil {
		h := NewSourceHandler(cfg.Sources)
		api.POST("/sources", h.Create)
		api.GET("/sources", h.List)
		api.GET("/sources/:id", h.Get)
		api.DELETE("/sources/:id", h.Delete)
	}

	if cfg.Roadmaps != nil {
		h := NewRoadmapHandler(cfg.Roadmaps, cfg.Completion, cfg.Tasks)
		api.POST("/roadmaps/generate", h.Generate)
		api.GET("/roadmaps", h.List)
		api.GET("/roadmaps/active", h.GetActive)
		api.GET("/roadmaps/:id", h.Get)
		api.GET("/sources/:id/roadmap", h.GetBySource)
		if cfg.Completion != nil {
			api.PUT("/roadmaps/:id/days/:day/complete", h.CompleteDay)
		}
		if cfg.Tasks != nil {
			api.GET("/roadmaps/:id/tasks", h.ListTasks)
		}
	}

	if cfg.Tasks != nil {
		h := NewTaskHandler(cfg.Tasks)
		api.GET("/tasks/today", h.Today)
		api.PUT("/tasks/:id/complete", h.Complete)
	}

	if cfg.Content != nil {
		h := NewContentHandler(cfg.Content)
		api.POST("/sources/:id/flashcards", h.Flashcards)
		api.POST("/sources/:id/mock-tests", h.MockTest)
		api.GET("/roadmaps/:id/days/:day/narrative", h.DayNarrative)
	}

	if cfg.Study != nil {
		h := NewStudyHandler(cfg.Study)
		api.POST("/decks", h.CreateDeck)
		api.GET("/decks", h.ListDecks)
		api.GET("/decks/:id", h.GetDeck)
		api.PUT("/decks/:id/cards/:index/review", h.ReviewCard)
		api.PUT("/decks/:id/cards/:index/master", h.MasterCard)
		api.DELETE("/decks/:id", h.DeleteDeck)
		api.POST("/mock-tests", h.CreateMockTest)
		api.GET("/mock-tests", h.ListMockTests)
		api.GET("/mock-tests/:id", h.GetMockTest)
		api.POST("/mock-tests/:id/submit", h.Submit)
		api.GET("/mock-tests/:id/attempts", h.ListAttempts)
		api.DELETE("/mock-tests/:id", h.DeleteMockTest)
	}

	return r
}

type Server struct {
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

// Handler exposes the engine for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.Engine
}
