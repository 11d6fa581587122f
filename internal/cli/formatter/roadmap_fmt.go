package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
)

const progressWidth = 20

// FormatRoadmap renders a roadmap summary box followed by its day table.
func FormatRoadmap(r *domain.Roadmap, now time.Time) string {
	var summary strings.Builder
	fmt.Fprintf(&summary, "%s  %s\n", Bold(r.Title), StatusPill(r.Status))
	fmt.Fprintf(&summary, "%s %s to %s, exam %s\n", Dim("Plan:"),
		HumanDate(r.StartDate), HumanDate(r.StartDate.AddDate(0, 0, r.TotalDays-1)),
		ExamCountdown(r.ExamDate, now))
	fmt.Fprintf(&summary, "%s %s  %d/%d days", Dim("Done:"),
		RenderProgress(r.Progress.Percentage, progressWidth), r.Progress.Completed, r.Progress.Total)

	var b strings.Builder
	b.WriteString(RenderBox("Roadmap", summary.String()))
	b.WriteString("\n\n")

	today := domain.CalendarDay(now)
	rows := make([][]string, 0, len(r.Days))
	for i := range r.Days {
		d := &r.Days[i]
		day := fmt.Sprintf("%d", d.Number)
		if d.Date.Equal(today) {
			day = StyleHeader.Render("▶ " + day)
		}
		rows = append(rows, []string{
			day,
			d.Date.Format("Mon Jan 2"),
			strings.Join(d.Topics, ", "),
			d.DurationLabel,
			PriorityBadge(d.Priority),
			KindBadge(d.Kind),
			Check(d.Completed),
		})
	}
	b.WriteString(RenderTable([]string{"DAY", "DATE", "TOPICS", "TIME", "PRIORITY", "KIND", "DONE"}, rows))
	return b.String()
}

// FormatRoadmapList renders one row per roadmap with its progress.
func FormatRoadmapList(roadmaps []*domain.Roadmap, now time.Time) string {
	if len(roadmaps) == 0 {
		return Dim("No roadmaps yet. Generate one with `preplock roadmap generate`.") + "\n"
	}
	rows := make([][]string, 0, len(roadmaps))
	for _, r := range roadmaps {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Title),
			StatusPill(r.Status),
			RenderProgress(r.Progress.Percentage, 10),
			ExamCountdown(r.ExamDate, now),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "STATUS", "PROGRESS", "EXAM"}, rows)
}

// FormatTasks renders materialized tasks in day order.
func FormatTasks(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks materialized for this roadmap.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			fmt.Sprintf("%d", t.DayNumber),
			t.ScheduledDate.Format("Mon Jan 2"),
			t.Title,
			string(t.Type),
			t.Duration,
			Check(t.Completed),
		})
	}
	return RenderTable([]string{"ID", "DAY", "DATE", "TITLE", "TYPE", "TIME", "DONE"}, rows)
}

// FormatCompleteDay reports the outcome of completing a day, including
// any task cascade warnings.
func FormatCompleteDay(resp *contract.CompleteDayResponse) string {
	var b strings.Builder
	if resp.AlreadyCompleted {
		fmt.Fprintf(&b, "%s Day %d was already complete.\n", Dim("○"), resp.DayNumber)
	} else {
		fmt.Fprintf(&b, "%s Day %d complete.\n", StyleGreen.Render("✔"), resp.DayNumber)
	}
	fmt.Fprintf(&b, "%s %s  %d/%d days\n", Dim("Progress:"),
		RenderProgress(resp.Progress.Percentage, progressWidth), resp.Progress.Completed, resp.Progress.Total)
	if resp.TasksCompleted > 0 {
		fmt.Fprintf(&b, "%s %d task(s) marked complete\n", Dim("Tasks:"), resp.TasksCompleted)
	}
	if resp.Status == domain.RoadmapCompleted {
		b.WriteString(StyleGreen.Render("Roadmap finished. Good luck on the exam!") + "\n")
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("warning:"), w)
	}
	return b.String()
}

// FormatCompleteTask reports the outcome of completing a single task.
func FormatCompleteTask(resp *contract.CompleteTaskResponse) string {
	if resp.AlreadyCompleted {
		return fmt.Sprintf("%s %s was already complete.\n", Dim("○"), resp.Task.Title)
	}
	return fmt.Sprintf("%s %s complete.\n", StyleGreen.Render("✔"), resp.Task.Title)
}
