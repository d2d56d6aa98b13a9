package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hashbench/internal/store"
)

var historyLast bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved benchmark runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyLast, "last", false, "Print the latest saved report instead of the run list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := store.NewSQLiteStore(viper.GetString("history_db"))
	if err != nil {
		return err
	}
	defer s.Close()

	if historyLast {
		run, err := s.LoadLatest()
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no saved runs")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(run.Report))
		return nil
	}

	runs, err := s.LoadAll()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tCOMMIT")
	for _, run := range runs {
		commit := run.Commit
		if commit == "" {
			commit = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", run.ID, run.CreatedAt.Local().Format(time.DateTime), commit)
	}
	return w.Flush()
}
