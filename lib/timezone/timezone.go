package timezone

import "time"

// Game servers and the wiki prices API both report timestamps in UTC,
// so day-boundary math (price snapshots, daily volumes) is pinned there
// regardless of where this process runs.
var Location = time.UTC

func Now() time.Time {
	return time.Now().In(Location)
}

// DayBounds returns the start of t's day and the start of the next
// day, both in Location. Anything in [start, end) happened "today".
func DayBounds(t time.Time) (start, end time.Time) {
	t = t.In(Location)
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
	end = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, Location)
	return start, end
}
