package dates

// Streaks computes the current and longest consecutive-day runs over days,
// which must be distinct and sorted ascending (see DistinctDays). The
// reference day is passed in so callers own the clock.
//
// The current streak only counts when the most recent activity was today or
// yesterday; otherwise it is 0 no matter what happened earlier. The longest
// streak is independent of the current one.
func Streaks(days []Date, today Date) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDays(1) == days[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	present := make(map[Date]struct{}, len(days))
	for _, d := range days {
		present[d] = struct{}{}
	}
	anchor := today
	if _, ok := present[anchor]; !ok {
		anchor = today.AddDays(-1)
		if _, ok := present[anchor]; !ok {
			return 0, longest
		}
	}
	for {
		if _, ok := present[anchor]; !ok {
			break
		}
		current++
		anchor = anchor.AddDays(-1)
	}
	return current, longest
}
