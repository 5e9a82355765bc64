// glcheck checks GitLab projects against a community-health checklist:
// required files, issue/MR templates, and project metadata.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/config"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/history"
)

var (
	cfgPath     string
	flagToken   string
	flagBaseURL string
	noHistory   bool
)

var rootCmd = &cobra.Command{
	Use:   "glcheck",
	Short: "GitLab community-health compliance checker",
	Long: `glcheck checks whether a GitLab project satisfies a fixed checklist of
community-health conventions: README, CONTRIBUTING, CHANGELOG and LICENSE
files, issue and merge-request templates, and description/tag metadata.

Projects can be addressed by username, numeric project ID, or project URL.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/glcheck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token (overrides config file and GLCHECK_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "GitLab instance URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record check runs")
}

// mustLoadConfig loads configuration and applies flag overrides. A missing
// token is fatal: nothing works without it.
func mustLoadConfig() config.Config {
	// Flags can supply the token, so inject them before validation.
	if flagToken != "" {
		os.Setenv("GLCHECK_TOKEN", flagToken)
	}
	if flagBaseURL != "" {
		os.Setenv("GLCHECK_BASE_URL", flagBaseURL)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newChecker(cfg config.Config) *compliance.Checker {
	return compliance.New(gitlab.NewClient(cfg.BaseURL, cfg.Token))
}

// openHistory opens the run-history store, or returns nil when history is
// disabled or unavailable. History failures never block a check.
func openHistory(cfg config.Config) *history.Store {
	if noHistory {
		return nil
	}
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		return nil
	}
	return store
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
