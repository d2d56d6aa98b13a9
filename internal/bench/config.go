// Package bench contains the measurement engine: the monotonic clock, the
// size calibrator, the trial scheduler, and the ordered report model.
package bench

import "fmt"

// Config carries the measurement window. It is built once at startup and
// passed explicitly; nothing in this package reads ambient configuration.
type Config struct {
	// MinRunSeconds is both the calibration threshold and the shortest
	// target duration scheduled.
	MinRunSeconds float64
	// MaxRunSeconds is the longest target duration scheduled.
	MaxRunSeconds float64
}

// DefaultConfig returns the standard 0.1s to 1.0s measurement window.
func DefaultConfig() Config {
	return Config{MinRunSeconds: 0.1, MaxRunSeconds: 1.0}
}

// Validate reports whether the window is usable.
func (c Config) Validate() error {
	if c.MinRunSeconds <= 0 {
		return fmt.Errorf("min run seconds must be positive, got %g", c.MinRunSeconds)
	}
	if c.MaxRunSeconds <= c.MinRunSeconds {
		return fmt.Errorf("max run seconds (%g) must exceed min run seconds (%g)", c.MaxRunSeconds, c.MinRunSeconds)
	}
	return nil
}
