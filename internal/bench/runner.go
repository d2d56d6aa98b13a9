package bench

import (
	"fmt"
	"log/slog"

	"hashbench/internal/tables"
	"hashbench/internal/workload"
)

// Runner drives workloads through calibration, scheduling, and measurement.
// Execution is strictly sequential; parallel trials would contend for cache
// and scheduler time and corrupt the numbers being collected.
type Runner struct {
	Clock Clock
	Cfg   Config
}

// NewRunner returns a Runner on the monotonic wall clock.
func NewRunner(cfg Config) *Runner {
	return &Runner{Clock: WallClock, Cfg: cfg}
}

// Series measures one workload kind against one implementation: calibrate,
// schedule, then one fresh timed workload per scheduled size.
func (r *Runner) Series(kind workload.Kind, impl tables.Impl) (Series, error) {
	speed, err := Calibrate(r.Clock, r.Cfg, kind, impl.New)
	if err != nil {
		return nil, err
	}
	slog.Debug("calibrated", "workload", kind.Name, "impl", impl.Name, "ops_per_sec", speed)

	trials := kind.New(impl.New).Trials()
	sizes, err := Schedule(r.Cfg, speed, trials)
	if err != nil {
		return nil, err
	}

	series := make(Series, 0, len(sizes))
	for _, n := range sizes {
		dt, err := measure(r.Clock, kind, impl.New, n)
		if err != nil {
			return nil, err
		}
		if dt < 0 {
			return nil, fmt.Errorf("%s/%s: clock ran backwards measuring n=%d", kind.Name, impl.Name, n)
		}
		series = append(series, Sample{N: n, Seconds: dt})
	}
	return series, nil
}

// Kind measures one workload kind against every implementation, in
// registration order.
func (r *Runner) Kind(kind workload.Kind, impls []tables.Impl) (KindResult, error) {
	result := KindResult{Kind: kind.Name}
	for _, impl := range impls {
		slog.Debug("measuring", "workload", kind.Name, "impl", impl.Name)
		series, err := r.Series(kind, impl)
		if err != nil {
			return KindResult{}, err
		}
		result.Impls = append(result.Impls, ImplSeries{Impl: impl.Name, Series: series})
	}
	return result, nil
}

// Run measures every given workload kind against every implementation and
// collects the full report.
func (r *Runner) Run(kinds []workload.Kind, impls []tables.Impl) (Report, error) {
	report := make(Report, 0, len(kinds))
	for _, kind := range kinds {
		result, err := r.Kind(kind, impls)
		if err != nil {
			return nil, err
		}
		report = append(report, result)
	}
	return report, nil
}
