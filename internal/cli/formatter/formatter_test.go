package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"xxx", "y"}}))
	assert.Equal(t, "A    BB\n───  ──\nxxx  y\n", got)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
		want  string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 50, 4, "[██░░]  50%"},
		{"full", 100, 4, "[████] 100%"},
		{"over 100 clamps", 140, 4, "[████] 100%"},
		{"negative clamps", -5, 4, "[░░░░]   0%"},
		{"tiny width clamps to 2", 50, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestExamCountdown_IgnoresTimeOfDay(t *testing.T) {
	exam := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tomorrow", stripANSI(ExamCountdown(exam, now)))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h", FormatHours(2))
	assert.Equal(t, "1.5h", FormatHours(1.5))
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, stripANSI(PriorityBadge(domain.PriorityHigh)), "HIGH")
	assert.Contains(t, stripANSI(PriorityBadge(domain.PriorityMedium)), "MEDIUM")
	assert.Contains(t, stripANSI(PriorityBadge(domain.PriorityLow)), "LOW")
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, stripANSI(StatusPill(domain.RoadmapActive)), "Active")
	assert.Contains(t, stripANSI(StatusPill(domain.RoadmapCompleted)), "Completed")
	assert.Contains(t, stripANSI(StatusPill(domain.RoadmapPaused)), "Paused")
}

func TestFormatSource(t *testing.T) {
	src := testutil.NewTestSource("Biology")
	got := stripANSI(FormatSource(src, testutil.TestStart))

	assert.Contains(t, got, "BIOLOGY")
	assert.Contains(t, got, "Jan 15, 2025")
	assert.Contains(t, got, "a1, a2")
	assert.Contains(t, got, "9h across 3 topics")
	// Stored order is preserved.
	assert.Less(t, strings.Index(got, "\nA "), strings.Index(got, "\nB "))
}

func TestFormatSourceList_Empty(t *testing.T) {
	assert.Contains(t, FormatSourceList(nil, time.Now()), "No sources")
}

func TestFormatRoadmap(t *testing.T) {
	src := testutil.NewTestSource("Biology")
	r := testutil.NewTestRoadmap(src, testutil.TestStart)
	_, err := r.CompleteDay(1, testutil.TestStart)
	require.NoError(t, err)

	got := stripANSI(FormatRoadmap(r, testutil.TestStart))

	assert.Contains(t, got, "Biology - Study Plan")
	assert.Contains(t, got, "Active")
	assert.Contains(t, got, "1/14 days")
	assert.Contains(t, got, "▶ 1")
	assert.Contains(t, got, domain.RevisionTopic)
	assert.Contains(t, got, "revision")
}

func TestFormatRoadmapList(t *testing.T) {
	src := testutil.NewTestSource("Biology")
	r := testutil.NewTestRoadmap(src, testutil.TestStart)

	got := stripANSI(FormatRoadmapList([]*domain.Roadmap{r}, testutil.TestStart))
	assert.Contains(t, got, "Biology - Study Plan")
	assert.Contains(t, got, "0%")
	assert.Contains(t, got, r.ID[:8])

	assert.Contains(t, FormatRoadmapList(nil, time.Now()), "No roadmaps")
}

func TestFormatTasks(t *testing.T) {
	src := testutil.NewTestSource("Biology")
	r := testutil.NewTestRoadmap(src, testutil.TestStart)
	task := testutil.NewTestTask(r, 2)

	got := stripANSI(FormatTasks([]*domain.Task{task}))
	assert.Contains(t, got, task.Title)
	assert.Contains(t, got, "study")
}

func TestFormatToday(t *testing.T) {
	resp := &contract.TodayResponse{
		Date: testutil.TestStart,
		Items: []contract.TodayItem{
			{
				RoadmapTitle: "Biology - Study Plan",
				DayNumber:    1,
				Date:         testutil.TestStart,
				Title:        "Day 1: A",
				Description:  "A",
				Duration:     "2 hours",
				Priority:     domain.PriorityHigh,
				Type:         domain.TaskStudy,
			},
		},
		Pending: 1,
		Total:   1,
	}

	got := stripANSI(FormatToday(resp))
	assert.Contains(t, got, "Day 1: A")
	assert.Contains(t, got, "Biology - Study Plan · study · 2 hours")
	assert.Contains(t, got, "1 pending, 0 completed")
	assert.NotContains(t, got, "scheduled")
}

func TestFormatToday_FallbackShowsScheduledDate(t *testing.T) {
	resp := &contract.TodayResponse{
		Date: testutil.TestStart,
		Items: []contract.TodayItem{
			{Title: "Day 3: B", Date: testutil.TestStart.AddDate(0, 0, 2), Fallback: true, Type: domain.TaskStudy},
		},
		Pending: 1,
		Total:   1,
	}
	assert.Contains(t, stripANSI(FormatToday(resp)), "scheduled Jan 3, 2025")
}

func TestFormatToday_Empty(t *testing.T) {
	got := stripANSI(FormatToday(&contract.TodayResponse{Date: testutil.TestStart, AllComplete: true}))
	assert.Contains(t, got, "Nothing scheduled")
}

func TestFormatCompleteDay(t *testing.T) {
	resp := &contract.CompleteDayResponse{
		DayNumber:      14,
		Progress:       domain.Progress{Completed: 14, Total: 14, Percentage: 100},
		Status:         domain.RoadmapCompleted,
		TasksCompleted: 1,
		Warnings:       []string{"task cascade failed"},
	}
	got := stripANSI(FormatCompleteDay(resp))
	assert.Contains(t, got, "Day 14 complete.")
	assert.Contains(t, got, "14/14 days")
	assert.Contains(t, got, "1 task(s) marked complete")
	assert.Contains(t, got, "Roadmap finished")
	assert.Contains(t, got, "warning: task cascade failed")
}

func TestFormatCompleteDay_AlreadyCompleted(t *testing.T) {
	resp := &contract.CompleteDayResponse{DayNumber: 2, AlreadyCompleted: true, Status: domain.RoadmapActive}
	assert.Contains(t, stripANSI(FormatCompleteDay(resp)), "Day 2 was already complete.")
}

func TestFormatQuestions_MarksAnswerOnlyWhenAsked(t *testing.T) {
	qs := []content.Question{{
		Topic:       "A",
		Prompt:      "Which is A?",
		Options:     []string{"a", "b", "c", "d"},
		AnswerIndex: 2,
		Explanation: "because",
	}}

	hidden := stripANSI(FormatQuestions(qs, false))
	assert.Contains(t, hidden, "C) c")
	assert.NotContains(t, hidden, "✔")
	assert.NotContains(t, hidden, "because")

	shown := stripANSI(FormatQuestions(qs, true))
	assert.Contains(t, shown, "C) c  ✔")
	assert.Contains(t, shown, "Why: because")
}

func TestFormatFlashcards(t *testing.T) {
	got := stripANSI(FormatFlashcards([]content.Flashcard{{Topic: "A", Front: "What is A?", Back: "A is A."}}))
	assert.Contains(t, got, " 1. What is A?  [A]")
	assert.Contains(t, got, "    A is A.")
	assert.Contains(t, FormatFlashcards(nil), "No flashcards")
}

func TestFormatDeck_MarksMastery(t *testing.T) {
	deck := testutil.NewTestDeck(testutil.NewTestSource("Biology"), 3)
	deck.Cards[1].Review(true, testutil.TestStart)

	out := stripANSI(FormatDeck(deck))
	assert.Contains(t, out, "1/3 cards")
	assert.Contains(t, out, " 2. ✔")
	assert.Contains(t, out, "reviewed 1x")

	list := stripANSI(FormatDeckList([]*domain.FlashcardDeck{deck}))
	assert.Contains(t, list, "1/3")
	assert.Contains(t, stripANSI(FormatDeckList(nil)), "No flashcard decks")
}

func TestFormatSubmission_ListsMisses(t *testing.T) {
	test := testutil.NewTestMockTest(testutil.NewTestSource("Biology"))
	attempt, err := test.Grade("a-1", []domain.AnswerSubmission{
		{QuestionIndex: 0, Selected: 0},
		{QuestionIndex: 1, Selected: 2},
	}, 60, testutil.TestStart)
	require.NoError(t, err)

	out := stripANSI(FormatSubmission(&contract.SubmitTestResponse{Attempt: attempt, Test: test}))
	assert.Contains(t, out, "1/2 correct")
	assert.Contains(t, out, "weak: B (0%)")
	assert.Contains(t, out, "Q2: you chose C, answer is A")
	assert.NotContains(t, out, "Q1:")
}

func TestFormatDeleteSource(t *testing.T) {
	id := "0123456789abcdef"
	assert.Equal(t, "Deleted source 01234567\n", stripANSI(FormatDeleteSource(&contract.DeleteSourceResponse{SourceID: id})))
	assert.Contains(t, stripANSI(FormatDeleteSource(&contract.DeleteSourceResponse{SourceID: id, RoadmapsDeleted: 2})), "2 roadmap(s)")
}
