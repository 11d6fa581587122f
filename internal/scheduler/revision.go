package scheduler

import "github.com/alexanderramin/preplock/internal/domain"

// RotateRevisionSubtopics spreads subtopics across the revision tail.
//
// Per-topic subtopic lists are interleaved round-robin (t1s1, t2s1, t3s1,
// t1s2, ...), a topic without subtopics standing in with its own name.
// When the sequence has at least one item per revision day, item k goes to
// day k mod revisionDays. Otherwise each day d gets item d mod len, so
// every revision day still has something to review.
func RotateRevisionSubtopics(topics []domain.Topic, revisionDays int) [][]string {
	if revisionDays <= 0 {
		return nil
	}
	lists := make([][]string, len(topics))
	longest := 0
	for i, t := range topics {
		if len(t.Subtopics) == 0 {
			lists[i] = []string{t.Name}
		} else {
			lists[i] = t.Subtopics
		}
		if len(lists[i]) > longest {
			longest = len(lists[i])
		}
	}

	var seq []string
	for round := 0; round < longest; round++ {
		for _, l := range lists {
			if round < len(l) {
				seq = append(seq, l[round])
			}
		}
	}

	out := make([][]string, revisionDays)
	if len(seq) == 0 {
		return out
	}
	if len(seq) >= revisionDays {
		for k, s := range seq {
			out[k%revisionDays] = append(out[k%revisionDays], s)
		}
		return out
	}
	for d := range out {
		out[d] = []string{seq[d%len(seq)]}
	}
	return out
}
