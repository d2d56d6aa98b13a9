package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hashbench/internal/bench"
	"hashbench/internal/memprof"
	"hashbench/internal/store"
	"hashbench/internal/tables"
	"hashbench/internal/workload"
)

// runExecCommand allows mocking the git lookup in tests.
var runExecCommand = exec.Command

func runRoot(cmd *cobra.Command, args []string) error {
	if memAllocated || memWritten {
		if memAllocated && memWritten {
			return fmt.Errorf("-m and -w are mutually exclusive")
		}
		if len(args) > 0 {
			return fmt.Errorf("memory profiling does not take a workload name")
		}
		policy := tables.BytesAllocated
		if memWritten {
			policy = tables.BytesWritten
		}
		return memprof.Profile(cmd.OutOrStdout(), policy, viper.GetInt("mem_steps"), tables.Registry())
	}

	cfg := bench.Config{
		MinRunSeconds: viper.GetFloat64("min_run_seconds"),
		MaxRunSeconds: viper.GetFloat64("max_run_seconds"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kinds := workload.Kinds()
	single := false
	if len(args) == 1 {
		kind, ok := workload.LookupKind(args[0])
		if !ok {
			return fmt.Errorf("no such workload: %s (try 'hashbench list')", args[0])
		}
		kinds = []workload.Kind{kind}
		single = true
	}

	runner := bench.NewRunner(cfg)
	report, err := runner.Run(kinds, tables.Registry())
	if err != nil {
		var inv *workload.InvariantError
		if errors.As(err, &inv) {
			return fmt.Errorf("fatal: %w", inv)
		}
		return err
	}

	var out []byte
	if single {
		out, err = json.MarshalIndent(report[0], "", "\t")
	} else {
		out, err = json.MarshalIndent(report, "", "\t")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if saveRun {
		if err := saveReport(report); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Run saved to %s\n", viper.GetString("history_db"))
	}
	return nil
}

func saveReport(report bench.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}

	s, err := store.NewSQLiteStore(viper.GetString("history_db"))
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.Run{CreatedAt: time.Now(), Report: raw}
	if commit, err := getGitCommit(); err == nil {
		run.Commit = commit
	}
	_, err = s.Save(run)
	return err
}

func getGitCommit() (string, error) {
	cmd := runExecCommand("git", "rev-parse", "--short", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
