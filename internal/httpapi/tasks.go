package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/service"
)

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GET /api/tasks/today
func (h *TaskHandler) Today(c *gin.Context) {
	resp, err := h.tasks.TodayTasks(c.Request.Context(), contract.NewTodayRequest(ownerID(c)))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, contract.NewTodayView(resp))
}

// PUT /api/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	resp, err := h.tasks.CompleteTask(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"task":             contract.NewTaskView(resp.Task),
		"alreadyCompleted": resp.AlreadyCompleted,
	})
}
