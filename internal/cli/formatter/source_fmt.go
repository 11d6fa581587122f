package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
)

// FormatSourceList renders sources as a table with exam countdowns.
func FormatSourceList(sources []*domain.Source, now time.Time) string {
	if len(sources) == 0 {
		return Dim("No sources imported yet.") + "\n"
	}
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Title),
			HumanDate(s.ExamDate),
			ExamCountdown(s.ExamDate, now),
			fmt.Sprintf("%d", len(s.Topics)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "EXAM", "DUE", "TOPICS"}, rows)
}

// FormatSource renders one source with its topics in stored order.
func FormatSource(s *domain.Source, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(s.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:  "), s.ID)
	fmt.Fprintf(&b, "%s %s (%s)\n\n", Dim("Exam:"), HumanDate(s.ExamDate), ExamCountdown(s.ExamDate, now))

	rows := make([][]string, 0, len(s.Topics))
	total := 0.0
	for _, t := range s.Topics {
		total += t.EstimatedHours
		rows = append(rows, []string{
			t.Name,
			PriorityBadge(t.Priority),
			FormatHours(t.EstimatedHours),
			joinOrDash(t.Subtopics),
		})
	}
	b.WriteString(RenderTable([]string{"TOPIC", "PRIORITY", "HOURS", "SUBTOPICS"}, rows))
	fmt.Fprintf(&b, "\n%s %s across %d topics\n", Dim("Total:"), FormatHours(total), len(s.Topics))
	return b.String()
}
