// Package memprof grows one table of each registered implementation
// element-by-element and records footprints, instead of timing anything.
package memprof

import (
	"bufio"
	"fmt"
	"io"

	"hashbench/internal/tables"
)

// DefaultSteps matches the growth range the harness has always profiled.
const DefaultSteps = 100000

// Profile writes one tab-separated row per step: the step index, then each
// implementation's current byte footprint under the given policy, in
// registration order. The footprint is recorded before the step's insertion,
// so row 0 shows every table empty.
func Profile(w io.Writer, policy tables.ByteSizePolicy, steps int, impls []tables.Impl) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	ts := make([]tables.Table, len(impls))
	for i, impl := range impls {
		ts[i] = impl.New()
	}

	bw := bufio.NewWriter(w)
	for i := 0; i < steps; i++ {
		fmt.Fprintf(bw, "%d", i)
		for _, t := range ts {
			fmt.Fprintf(bw, "\t%d", t.ByteSize(policy))
		}
		fmt.Fprintln(bw)

		for _, t := range ts {
			t.Set(tables.Key(i+1), tables.Value(i))
		}
	}
	return bw.Flush()
}
