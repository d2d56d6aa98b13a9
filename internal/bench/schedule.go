package bench

import (
	"fmt"
	"math"
)

// Schedule converts an estimated throughput into the problem sizes to
// measure. Target durations are spaced linearly between the window bounds,
// not exponentially: table implementations fall off performance cliffs at
// rehash boundaries that are exponentially spaced in size, and linear
// duration spacing lands observations on both sides of a cliff instead of
// skipping over it.
func Schedule(cfg Config, opsPerSecond float64, trials int) ([]uint64, error) {
	if trials < 2 {
		return nil, fmt.Errorf("need at least 2 trials, got %d", trials)
	}
	sizes := make([]uint64, trials)
	for i := range sizes {
		target := cfg.MinRunSeconds + float64(i)/float64(trials-1)*(cfg.MaxRunSeconds-cfg.MinRunSeconds)
		n := uint64(math.Ceil(opsPerSecond * target))
		if n == 0 {
			n = 1
		}
		sizes[i] = n
	}
	return sizes, nil
}
