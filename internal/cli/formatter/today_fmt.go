package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/preplock/internal/contract"
)

// FormatToday renders today's work grouped in response order. Items pulled
// forward from a later day are labelled with their scheduled date.
func FormatToday(resp *contract.TodayResponse) string {
	var b strings.Builder
	b.WriteString(Header("Today · " + resp.Date.Format("Mon Jan 2")))
	b.WriteString("\n")

	if resp.Total == 0 {
		b.WriteString(Dim("Nothing scheduled. Generate a roadmap to get started.") + "\n")
		return b.String()
	}

	for _, it := range resp.Items {
		fmt.Fprintf(&b, "%s %s  %s\n", Check(it.Completed), Bold(it.Title), PriorityBadge(it.Priority))
		meta := []string{it.RoadmapTitle, string(it.Type)}
		if it.Duration != "" {
			meta = append(meta, it.Duration)
		}
		if it.Fallback {
			meta = append(meta, "scheduled "+HumanDate(it.Date))
		}
		fmt.Fprintf(&b, "  %s\n", Dim(strings.Join(meta, " · ")))
		if it.Description != "" {
			fmt.Fprintf(&b, "  %s %s\n", Dim("Focus:"), it.Description)
		}
	}

	b.WriteString("\n")
	if resp.AllComplete {
		b.WriteString(StyleGreen.Render("All done for today.") + "\n")
	} else {
		fmt.Fprintf(&b, "%s %d pending, %d completed\n", Dim("Summary:"), resp.Pending, resp.Completed)
	}
	return b.String()
}
