package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priorities = []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

func randomTopics(rng *rand.Rand) []domain.Topic {
	n := rng.Intn(40) + 1
	topics := make([]domain.Topic, n)
	for i := range topics {
		var subs []string
		for s, k := 0, rng.Intn(4); s < k; s++ {
			subs = append(subs, fmt.Sprintf("t%d-s%d", i, s))
		}
		topics[i] = domain.Topic{
			Name:           fmt.Sprintf("t%d", i),
			Subtopics:      subs,
			Priority:       priorities[rng.Intn(len(priorities))],
			EstimatedHours: float64(rng.Intn(12)+1) / 2,
		}
	}
	return topics
}

// TestAllocate_Properties checks day count, coverage, ordering and
// determinism over random inputs.
func TestAllocate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := date("2025-01-01")

	for trial := 0; trial < 300; trial++ {
		topics := randomTopics(rng)
		horizon := rng.Intn(80) + 7
		exam := start.AddDate(0, 0, horizon)

		days, err := Allocate(topics, start, exam)
		require.NoError(t, err, "trial %d", trial)

		// Day count equals the horizon.
		require.Len(t, days, horizon, "trial %d", trial)

		// Coverage: each topic appears exactly once on a study day.
		seen := map[string]int{}
		var order []string
		for _, d := range days {
			if d.Kind != domain.DayStudy {
				continue
			}
			for _, name := range d.Topics {
				seen[name]++
				order = append(order, name)
			}
		}
		for _, tp := range topics {
			assert.Equal(t, 1, seen[tp.Name], "trial %d topic %s", trial, tp.Name)
		}

		// Priority ordering: no topic precedes a topic of a higher tier.
		byName := map[string]domain.Topic{}
		for _, tp := range topics {
			byName[tp.Name] = tp
		}
		for i := 1; i < len(order); i++ {
			assert.LessOrEqual(t, byName[order[i-1]].Priority.Rank(), byName[order[i]].Priority.Rank(),
				"trial %d: %s before %s", trial, order[i-1], order[i])
		}

		// Revision tail length.
		plan, err := PlanHorizon(start, exam)
		require.NoError(t, err)
		revision := 0
		for _, d := range days {
			if d.Kind == domain.DayRevision {
				revision++
				assert.NotEmpty(t, d.Subtopics, "trial %d day %d", trial, d.Number)
			}
		}
		assert.Equal(t, plan.RevisionDays, revision, "trial %d", trial)

		// Determinism.
		again, err := Allocate(topics, start, exam)
		require.NoError(t, err)
		assert.Equal(t, days, again, "trial %d", trial)
	}
}

func TestDurationLabel_Monotonic(t *testing.T) {
	rank := map[string]int{"1-2 hours": 0, "2-3 hours": 1, "4-5 hours": 2, "6+ hours": 3}
	prev := 0
	for h := 0.0; h <= 12; h += 0.25 {
		r := rank[DurationLabel(h)]
		assert.GreaterOrEqual(t, r, prev, "hours=%v", h)
		prev = r
	}
}
