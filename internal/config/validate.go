// Package config validates the viper-bound settings before any measurement
// starts.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any
// are invalid. Call after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	minRun := viper.GetFloat64("min_run_seconds")
	maxRun := viper.GetFloat64("max_run_seconds")
	if minRun <= 0 {
		errors = append(errors, fmt.Sprintf("min_run_seconds must be positive, got: %g", minRun))
	}
	if maxRun <= minRun {
		errors = append(errors, fmt.Sprintf("max_run_seconds must exceed min_run_seconds, got: %g <= %g", maxRun, minRun))
	}

	if steps := viper.GetInt("mem_steps"); steps <= 0 {
		errors = append(errors, fmt.Sprintf("mem_steps must be positive, got: %d", steps))
	}

	if path := viper.GetString("history_db"); path == "" {
		errors = append(errors, "history_db must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
