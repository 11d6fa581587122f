package scheduler

// RevisionDayHours is the fixed workload of a revision day.
const RevisionDayHours = 4.0

// DurationLabel maps a day's estimated hours to a display band.
func DurationLabel(hours float64) string {
	switch {
	case hours < 2:
		return "1-2 hours"
	case hours < 4:
		return "2-3 hours"
	case hours < 6:
		return "4-5 hours"
	default:
		return "6+ hours"
	}
}
