package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly distance from now to t, such
// as "Tomorrow", "In 3d" or "2w ago".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ExamCountdown renders the distance to an exam, red inside a week.
func ExamCountdown(exam, now time.Time) string {
	text := RelativeDateFrom(domain.CalendarDay(exam), domain.CalendarDay(now))
	days := int(domain.CalendarDay(exam).Sub(domain.CalendarDay(now)).Hours() / 24)
	switch {
	case days < 0:
		return StyleDim.Render(text)
	case days <= 7:
		return StyleRed.Render(text)
	case days <= 14:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate formats a calendar date as "Jan 2, 2006".
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// StatusPill returns a colored roadmap status indicator.
func StatusPill(status domain.RoadmapStatus) string {
	switch status {
	case domain.RoadmapActive:
		return StyleGreen.Render("● Active")
	case domain.RoadmapPaused:
		return StyleYellow.Render("○ Paused")
	case domain.RoadmapCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Check renders a completion mark.
func Check(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders 1.5 as "1.5h" and 2 as "2h".
func FormatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%dh", int(h))
	}
	return fmt.Sprintf("%.1fh", h)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "--"
	}
	return strings.Join(items, ", ")
}
