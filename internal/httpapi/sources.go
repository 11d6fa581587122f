package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/importer"
	"github.com/alexanderramin/preplock/internal/service"
)

type SourceHandler struct {
	sources service.SourceService
}

func NewSourceHandler(sources service.SourceService) *SourceHandler {
	return &SourceHandler{sources: sources}
}

// POST /api/sources
func (h *SourceHandler) Create(c *gin.Context) {
	var schema importer.SyllabusSchema
	if err := c.ShouldBindJSON(&schema); err != nil {
		RespondError(c, http.StatusBadRequest, string(contract.CodeInvalidRequest), err)
		return
	}
	src, err := h.sources.Create(c.Request.Context(), ownerID(c), &schema)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"source": contract.NewSourceView(src)})
}

// GET /api/sources
func (h *SourceHandler) List(c *gin.Context) {
	sources, err := h.sources.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	views := make([]contract.SourceView, len(sources))
	for i, s := range sources {
		views[i] = contract.NewSourceView(s)
	}
	RespondOK(c, gin.H{"sources": views})
}

// GET /api/sources/:id
func (h *SourceHandler) Get(c *gin.Context) {
	src, err := h.sources.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"source": contract.NewSourceView(src)})
}

// DELETE /api/sources/:id
func (h *SourceHandler) Delete(c *gin.Context) {
	resp, err := h.sources.Delete(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, contract.NewDeleteSourceView(resp))
}
