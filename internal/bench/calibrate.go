package bench

import (
	"hashbench/internal/tables"
	"hashbench/internal/workload"
)

// Calibrate estimates a workload's throughput in operations per second.
// It doubles the problem size from 1 until a timed run crosses the minimum
// run duration, then returns size/duration. Doubling reaches the threshold
// in logarithmically many attempts for any workload whose cost is at least
// linear in size. A fresh workload is built per attempt; setup is untimed.
func Calibrate(clock Clock, cfg Config, kind workload.Kind, newTable tables.Factory) (float64, error) {
	for n := uint64(1); ; n *= 2 {
		dt, err := measure(clock, kind, newTable, n)
		if err != nil {
			return 0, err
		}
		if dt >= cfg.MinRunSeconds {
			return float64(n) / dt, nil
		}
	}
}

// measure runs one fresh workload of size n and returns the timed duration
// of its Run phase.
func measure(clock Clock, kind workload.Kind, newTable tables.Factory, n uint64) (float64, error) {
	w := kind.New(newTable)
	w.Setup(n)
	var err error
	dt := clock(func() { err = w.Run(n) })
	if err != nil {
		return 0, err
	}
	return dt, nil
}
