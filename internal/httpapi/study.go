package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/service"
)

type StudyHandler struct {
	study service.StudyService
}

func NewStudyHandler(study service.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

type createStudyBody struct {
	SourceID string `json:"sourceId"`
	Count    int    `json:"count"`
}

func (b createStudyBody) validate() error {
	if b.SourceID == "" {
		return &contract.RequestError{Code: contract.CodeInvalidRequest, Field: "sourceId", Message: "source is required"}
	}
	if b.Count < 0 {
		return &contract.RequestError{Code: contract.CodeInvalidRequest, Field: "count", Message: "count must be a non-negative integer"}
	}
	return nil
}

// POST /api/decks
func (h *StudyHandler) CreateDeck(c *gin.Context) {
	var body createStudyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, string(contract.CodeInvalidRequest), err)
		return
	}
	if err := body.validate(); err != nil {
		respondUseCaseError(c, err)
		return
	}
	deck, err := h.study.CreateDeck(c.Request.Context(), ownerID(c), body.SourceID, body.Count)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deck": contract.NewDeckView(deck)})
}

// GET /api/decks
func (h *StudyHandler) ListDecks(c *gin.Context) {
	decks, err := h.study.ListDecks(c.Request.Context(), ownerID(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"decks": contract.NewDeckViews(decks)})
}

// GET /api/decks/:id
func (h *StudyHandler) GetDeck(c *gin.Context) {
	deck, err := h.study.GetDeck(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"deck": contract.NewDeckView(deck)})
}

// PUT /api/decks/:id/cards/:index/review
func (h *StudyHandler) ReviewCard(c *gin.Context) {
	h.reviewCard(c, false)
}

// PUT /api/decks/:id/cards/:index/master
func (h *StudyHandler) MasterCard(c *gin.Context) {
	h.reviewCard(c, true)
}

func (h *StudyHandler) reviewCard(c *gin.Context, mastered bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondUseCaseError(c, &contract.RequestError{Code: contract.CodeInvalidRequest, Field: "index", Message: "card index must be an integer"})
		return
	}
	deck, err := h.study.ReviewCard(c.Request.Context(), contract.ReviewCardRequest{
		OwnerID:   ownerID(c),
		DeckID:    c.Param("id"),
		CardIndex: index,
		Mastered:  mastered,
	})
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"deck": contract.NewDeckView(deck)})
}

// DELETE /api/decks/:id
func (h *StudyHandler) DeleteDeck(c *gin.Context) {
	if err := h.study.DeleteDeck(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/mock-tests
func (h *StudyHandler) CreateMockTest(c *gin.Context) {
	var body createStudyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, string(contract.CodeInvalidRequest), err)
		return
	}
	if err := body.validate(); err != nil {
		respondUseCaseError(c, err)
		return
	}
	test, err := h.study.CreateMockTest(c.Request.Context(), ownerID(c), body.SourceID, body.Count)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mockTest": contract.NewMockTestView(test)})
}

// GET /api/mock-tests
func (h *StudyHandler) ListMockTests(c *gin.Context) {
	tests, err := h.study.ListMockTests(c.Request.Context(), ownerID(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"mockTests": contract.NewMockTestViews(tests)})
}

// GET /api/mock-tests/:id
func (h *StudyHandler) GetMockTest(c *gin.Context) {
	test, err := h.study.GetMockTest(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"mockTest": contract.NewMockTestView(test)})
}

type submitBody struct {
	Answers []struct {
		QuestionIndex int `json:"questionIndex"`
		Selected      int `json:"selectedAnswer"`
		TimeTaken     int `json:"timeTaken"`
	} `json:"answers"`
	TimeSpent int `json:"timeSpent"`
}

// POST /api/mock-tests/:id/submit
func (h *StudyHandler) Submit(c *gin.Context) {
	var body submitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, string(contract.CodeInvalidRequest), err)
		return
	}
	answers := make([]domain.AnswerSubmission, len(body.Answers))
	for i, a := range body.Answers {
		answers[i] = domain.AnswerSubmission{QuestionIndex: a.QuestionIndex, Selected: a.Selected, TimeTakenSeconds: a.TimeTaken}
	}
	resp, err := h.study.SubmitMockTest(c.Request.Context(), contract.SubmitTestRequest{
		OwnerID:          ownerID(c),
		MockTestID:       c.Param("id"),
		Answers:          answers,
		TimeSpentSeconds: body.TimeSpent,
	})
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, contract.NewSubmitTestView(resp))
}

// GET /api/mock-tests/:id/attempts
func (h *StudyHandler) ListAttempts(c *gin.Context) {
	attempts, err := h.study.ListAttempts(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	RespondOK(c, gin.H{"attempts": contract.NewAttemptViews(attempts)})
}

// DELETE /api/mock-tests/:id
func (h *StudyHandler) DeleteMockTest(c *gin.Context) {
	if err := h.study.DeleteMockTest(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
