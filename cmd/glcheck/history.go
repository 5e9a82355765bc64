package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/history"
	"github.com/codehealth/glcheck/internal/report"
)

var (
	historyLimit   int
	historyVerbose bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent compliance check runs",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No recorded runs yet.")
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n", cyan("=== Recent Compliance Runs ==="))
		for _, run := range runs {
			fmt.Printf("  %s  %-40s %d/%d %s\n",
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.ProjectName, run.Score, run.Total,
				gray("("+run.Input+")"))
			if historyVerbose {
				for _, key := range sortedKeys(run) {
					if run.Status[key] {
						fmt.Printf("      %s %s\n", green("✓"), report.DisplayName(key))
					} else {
						fmt.Printf("      %s %s\n", red("✗"), report.DisplayName(key))
					}
				}
			}
		}
		fmt.Println()
	},
}

func sortedKeys(run history.Run) []string {
	keys := make([]string, 0, len(run.Status))
	for _, key := range compliance.AllRequirements() {
		if _, ok := run.Status[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show")
	historyCmd.Flags().BoolVarP(&historyVerbose, "verbose", "v", false, "show per-requirement results")
	rootCmd.AddCommand(historyCmd)
}
