package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
)

// FormatDeckList renders saved decks with their mastery counts.
func FormatDeckList(decks []*domain.FlashcardDeck) string {
	if len(decks) == 0 {
		return Dim("No flashcard decks saved yet.") + "\n"
	}
	rows := make([][]string, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.Title),
			fmt.Sprintf("%d/%d", d.MasteredCount(), len(d.Cards)),
			HumanDate(d.CreatedAt),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "MASTERED", "CREATED"}, rows)
}

// FormatDeck renders a deck's cards numbered from 1 with review state.
func FormatDeck(d *domain.FlashcardDeck) string {
	var b strings.Builder
	b.WriteString(Header(d.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:      "), d.ID)
	fmt.Fprintf(&b, "%s %d/%d cards\n\n", Dim("Mastered:"), d.MasteredCount(), len(d.Cards))
	for _, c := range d.Cards {
		mark := Dim("○")
		if c.Mastered {
			mark = StyleGreen.Render("✔")
		}
		fmt.Fprintf(&b, "%s %s %s  %s\n", Dim(fmt.Sprintf("%2d.", c.Index+1)), mark, Bold(c.Front), Dim("["+c.Topic+"]"))
		fmt.Fprintf(&b, "       %s\n", c.Back)
		if c.ReviewCount > 0 {
			fmt.Fprintf(&b, "       %s\n", Dim(fmt.Sprintf("reviewed %dx", c.ReviewCount)))
		}
	}
	return b.String()
}

// FormatMockTestList renders saved mock tests.
func FormatMockTestList(tests []*domain.MockTest) string {
	if len(tests) == 0 {
		return Dim("No mock tests saved yet.") + "\n"
	}
	rows := make([][]string, 0, len(tests))
	for _, t := range tests {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			fmt.Sprintf("%d", len(t.Questions)),
			fmt.Sprintf("%dm", t.DurationMinutes),
			HumanDate(t.CreatedAt),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "QUESTIONS", "TIME", "CREATED"}, rows)
}

// FormatMockTest renders a saved test without its answers.
func FormatMockTest(t *domain.MockTest) string {
	var b strings.Builder
	b.WriteString(Header(t.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:  "), t.ID)
	fmt.Fprintf(&b, "%s %d minutes\n\n", Dim("Time:"), t.DurationMinutes)
	for i, q := range t.Questions {
		fmt.Fprintf(&b, "%s %s  %s\n", Dim(fmt.Sprintf("%2d.", i+1)), Bold(q.Prompt), Dim("["+q.Topic+"]"))
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "    %c) %s\n", 'A'+j, opt)
		}
	}
	return b.String()
}

// FormatSubmission reports a graded attempt with the correct options for
// every question that was missed.
func FormatSubmission(resp *contract.SubmitTestResponse) string {
	var b strings.Builder
	b.WriteString(formatAttemptSummary(resp.Attempt))
	for _, a := range resp.Attempt.Answers {
		if a.Correct {
			continue
		}
		q := resp.Test.Questions[a.QuestionIndex]
		fmt.Fprintf(&b, "%s Q%d: you chose %c, answer is %c", StyleRed.Render("✘"),
			a.QuestionIndex+1, 'A'+a.Selected, 'A'+q.AnswerIndex)
		if q.Explanation != "" {
			fmt.Fprintf(&b, "  %s", Dim(q.Explanation))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAttempts renders an attempt history, most recent first.
func FormatAttempts(attempts []*domain.TestAttempt) string {
	if len(attempts) == 0 {
		return Dim("No attempts yet.") + "\n"
	}
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		weak := make([]string, len(a.WeakTopics))
		for i, w := range a.WeakTopics {
			weak[i] = w.Topic
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			a.CompletedAt.Format("Jan 2 15:04"),
			fmt.Sprintf("%d/%d", a.Score, a.TotalQuestions),
			fmt.Sprintf("%d%%", a.Percentage),
			joinOrDash(weak),
		})
	}
	return RenderTable([]string{"ID", "TAKEN", "SCORE", "PCT", "WEAK"}, rows)
}

// FormatDeleteSource reports what went with a deleted source.
func FormatDeleteSource(resp *contract.DeleteSourceResponse) string {
	if resp.RoadmapsDeleted == 0 {
		return fmt.Sprintf("Deleted source %s\n", TruncID(resp.SourceID))
	}
	return fmt.Sprintf("Deleted source %s and %d roadmap(s)\n", TruncID(resp.SourceID), resp.RoadmapsDeleted)
}

func formatAttemptSummary(a *domain.TestAttempt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d correct  %s\n", Dim("Score:"), a.Score, a.TotalQuestions,
		RenderProgress(a.Percentage, progressWidth))
	for _, w := range a.WeakTopics {
		fmt.Fprintf(&b, "%s %s (%d%%)\n", StyleYellow.Render("weak:"), w.Topic, w.Percentage)
	}
	return b.String()
}
