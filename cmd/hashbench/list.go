package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"hashbench/internal/tables"
	"hashbench/internal/workload"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered workloads and table implementations",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title.Render("Workloads"))
	for _, kind := range workload.Kinds() {
		w := kind.New(func() tables.Table { return tables.NewOpenTable() })
		class := "stable"
		if w.Trials() == workload.NoisyTrials {
			class = "noisy"
		}
		fmt.Fprintf(out, "  %s %s\n", kind.Name, dim.Render(fmt.Sprintf("(%s, %d trials)", class, w.Trials())))
	}

	fmt.Fprintln(out, title.Render("Implementations"))
	for _, impl := range tables.Registry() {
		fmt.Fprintf(out, "  %s\n", impl.Name)
	}
	return nil
}
