package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/content"
)

// FormatFlashcards renders numbered front/back pairs.
func FormatFlashcards(cards []content.Flashcard) string {
	if len(cards) == 0 {
		return Dim("No flashcards generated.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Flashcards"))
	b.WriteString("\n")
	for i, c := range cards {
		fmt.Fprintf(&b, "%s %s  %s\n", Dim(fmt.Sprintf("%2d.", i+1)), Bold(c.Front), Dim("["+c.Topic+"]"))
		fmt.Fprintf(&b, "    %s\n", c.Back)
	}
	return b.String()
}

// FormatQuestions renders a mock test with lettered options; the correct
// option is marked when showAnswers is set.
func FormatQuestions(questions []content.Question, showAnswers bool) string {
	if len(questions) == 0 {
		return Dim("No questions generated.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Mock Test"))
	b.WriteString("\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%s %s  %s\n", Dim(fmt.Sprintf("%2d.", i+1)), Bold(q.Prompt), Dim("["+q.Topic+"]"))
		for j, opt := range q.Options {
			label := fmt.Sprintf("    %c) %s", 'A'+j, opt)
			if showAnswers && j == q.AnswerIndex {
				label = StyleGreen.Render(label + "  ✔")
			}
			b.WriteString(label + "\n")
		}
		if showAnswers && q.Explanation != "" {
			fmt.Fprintf(&b, "    %s %s\n", Dim("Why:"), q.Explanation)
		}
	}
	return b.String()
}
