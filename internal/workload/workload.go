// Package workload defines the deterministic benchmark workloads run against
// a table implementation. Each workload prepares state in Setup (untimed) and
// performs its measured operation sequence in Run (timed). Both are pure
// functions of n and the workload's fixed seed, so a given size replays the
// exact same table operations on every implementation and every run.
package workload

import (
	"fmt"

	"hashbench/internal/tables"
)

// Workload is one benchmarkable unit of work over a single table.
type Workload interface {
	// Setup prepares state for a run of size n. It is excluded from timing
	// and is idempotent for equal n.
	Setup(n uint64)
	// Run performs the timed operation sequence. A non-nil error is always a
	// *InvariantError and must abort the benchmark.
	Run(n uint64) error
	// Trials reports how many measurement points this workload kind uses.
	Trials() int
}

// Trial counts per stability class. Workloads whose sizes are subject to
// input-dependent adjustment get extra points to smooth out jitter when
// plotted.
const (
	StableTrials = 10
	NoisyTrials  = 25
)

type stable struct{}

func (stable) Trials() int { return StableTrials }

type noisy struct{}

func (noisy) Trials() int { return NoisyTrials }

// Kind pairs a workload name with a constructor. A fresh Workload is built
// for every measurement point so no state leaks between trials.
type Kind struct {
	Name string
	New  func(newTable tables.Factory) Workload
}

// Kinds returns every workload kind in report order.
func Kinds() []Kind {
	return []Kind{
		{Name: "InsertLargeTest", New: newInsertLarge},
		{Name: "InsertSmallTest", New: newInsertSmall},
		{Name: "LookupHitTest", New: newLookupHit},
		{Name: "LookupMissTest", New: newLookupMiss},
		{Name: "WorklistTest", New: newWorklist},
		{Name: "DeleteTest", New: newDeleteTest},
		{Name: "LookupAfterDeleteTest", New: newLookupAfterDelete},
		{Name: "InsertAfterDeleteTest", New: newInsertAfterDelete},
	}
}

// LookupKind returns the kind with the given name.
func LookupKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// InvariantError reports a table operation whose result contradicts what the
// workload guarantees. It indicates a broken table implementation or a
// measurement fault; there is no defined continuation after one.
type InvariantError struct {
	Workload string
	Detail   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Workload, e.Detail)
}

func invariantf(workload, format string, args ...any) error {
	return &InvariantError{Workload: workload, Detail: fmt.Sprintf(format, args...)}
}
