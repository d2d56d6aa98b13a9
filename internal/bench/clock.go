package bench

import "time"

// Clock measures the wall-clock duration of op in seconds. It is a function
// type so tests can substitute a deterministic fake.
type Clock func(op func()) float64

// WallClock times op with the runtime's monotonic clock, immune to
// wall-clock-of-day adjustments. Nanosecond resolution keeps measurement
// error far below the shortest scheduled run.
func WallClock(op func()) float64 {
	start := time.Now()
	op()
	return time.Since(start).Seconds()
}
