package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/service"
)

type ContentHandler struct {
	content service.ContentService
}

func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// POST /api/sources/:id/flashcards?count=N
func (h *ContentHandler) Flashcards(c *gin.Context) {
	count, err := countQuery(c)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	cards, err := h.content.Flashcards(c.Request.Context(), ownerID(c), c.Param("id"), count)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"flashcards": cards})
}

// POST /api/sources/:id/mock-tests?count=N
func (h *ContentHandler) MockTest(c *gin.Context) {
	count, err := countQuery(c)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	questions, err := h.content.MockTest(c.Request.Context(), ownerID(c), c.Param("id"), count)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

// GET /api/roadmaps/:id/days/:day/narrative
func (h *ContentHandler) DayNarrative(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	text, err := h.content.DayNarrative(c.Request.Context(), ownerID(c), c.Param("id"), day)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"day": day, "narrative": text})
}

// countQuery reads ?count; absent means the generator default.
func countQuery(c *gin.Context) (int, error) {
	raw := c.Query("count")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &contract.RequestError{Code: contract.CodeInvalidRequest, Field: "count", Message: "count must be a non-negative integer"}
	}
	return n, nil
}
