package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/config"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/history"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check glcheck configuration and connectivity",
	Long: `Run health checks to diagnose common configuration issues.

This command checks for:
- Config file presence
- API token presence
- API connectivity and token validity
- History database accessibility

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Critical failures that prevent glcheck from running`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running glcheck health checks...\n\n")

		var failures []string

		// Check 1: config file
		fmt.Printf("%s Config file\n", cyan("→"))
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("  %s No config file at %s (environment variables still apply)\n", yellow("⚠"), path)
		} else {
			fmt.Printf("  %s Found config: %s\n", green("✓"), path)
		}

		// Check 2: token
		fmt.Printf("%s API token\n", cyan("→"))
		if flagToken != "" {
			os.Setenv("GLCHECK_TOKEN", flagToken)
		}
		if flagBaseURL != "" {
			os.Setenv("GLCHECK_BASE_URL", flagBaseURL)
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("  %s %v\n", red("✗"), err)
			fmt.Printf("\n%s Critical failures prevent glcheck from running\n", red("✗"))
			os.Exit(2)
		}
		fmt.Printf("  %s Token configured\n", green("✓"))

		// Check 3: API connectivity + auth
		fmt.Printf("%s API connectivity (%s)\n", cyan("→"), cfg.BaseURL)
		client := gitlab.NewClient(cfg.BaseURL, cfg.Token)
		status, _, err := client.GetJSON(context.Background(), "/version", nil)
		switch {
		case err != nil:
			failures = append(failures, "API unreachable")
			fmt.Printf("  %s Cannot reach API\n", red("✗"))
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		case status == http.StatusUnauthorized:
			failures = append(failures, "token rejected")
			fmt.Printf("  %s Token rejected (401)\n", red("✗"))
		case status != http.StatusOK:
			failures = append(failures, fmt.Sprintf("unexpected status %d", status))
			fmt.Printf("  %s Unexpected status %d from /version\n", yellow("⚠"), status)
		default:
			fmt.Printf("  %s API reachable, token accepted\n", green("✓"))
		}

		// Check 4: history database
		fmt.Printf("%s History database\n", cyan("→"))
		if store, err := history.Open(cfg.HistoryPath); err != nil {
			failures = append(failures, "history database unavailable")
			fmt.Printf("  %s Cannot open %s\n", yellow("⚠"), cfg.HistoryPath)
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			store.Close()
			fmt.Printf("  %s History database writable: %s\n", green("✓"), cfg.HistoryPath)
		}

		fmt.Println()
		if len(failures) > 0 {
			fmt.Printf("%s %d check(s) failed\n", red("✗"), len(failures))
			os.Exit(1)
		}
		fmt.Printf("%s All checks passed\n", green("✓"))
	},
}

func init() {
	doctorCmd.Flags().BoolP("verbose", "v", false, "show error details")
	rootCmd.AddCommand(doctorCmd)
}
