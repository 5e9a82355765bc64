package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/config"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/report"
)

var checkSelect int

var checkCmd = &cobra.Command{
	Use:   "check <username | project-id | project-url>",
	Short: "Run a compliance check against a project",
	Long: `Run the community-health compliance checklist against a project.

The argument is classified automatically:
- a project URL on the configured instance resolves that project
- an all-digits value is treated as a numeric project ID (never a user ID)
- anything else is treated as a username; its member projects are listed,
  ordered by last activity, and one can be picked with --select`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		checker := newChecker(cfg)
		ctx := context.Background()

		result := checker.Classify(ctx, args[0])
		switch result.Kind {
		case compliance.KindError:
			fmt.Fprintf(os.Stderr, "Error: %s\n", result.Message)
			os.Exit(1)

		case compliance.KindProject:
			runCheck(ctx, cfg, checker, args[0], result.Project)

		case compliance.KindProjectList:
			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("%s Found %d projects for this user\n", green("✓"), len(result.Projects))
			if result.Truncated {
				fmt.Printf("%s Reached pagination limit; some projects might not be listed\n", yellow("⚠"))
			}

			if checkSelect > 0 {
				if checkSelect > len(result.Projects) {
					fmt.Fprintf(os.Stderr, "Error: --select %d out of range (1-%d)\n", checkSelect, len(result.Projects))
					os.Exit(1)
				}
				runCheck(ctx, cfg, checker, args[0], &result.Projects[checkSelect-1])
				return
			}

			gray := color.New(color.FgHiBlack).SprintFunc()
			for i, p := range result.Projects {
				fmt.Printf("  %3d. %s %s\n", i+1, p.NameWithNamespace, gray(fmt.Sprintf("(%d)", p.ID)))
			}
			fmt.Println("\nRe-run with --select <n> (or a project ID) to check one of them.")
		}
	},
}

func runCheck(ctx context.Context, cfg config.Config, checker *compliance.Checker, input string, project *gitlab.Project) {
	status := checker.Evaluate(ctx, project.ID)
	if len(status) == 0 {
		fmt.Fprintln(os.Stderr, "Error: failed to fetch compliance info")
		os.Exit(1)
	}

	report.PrintProject(project, cfg.BaseURL)
	report.PrintStatus(status)

	if store := openHistory(cfg); store != nil {
		defer store.Close()
		if _, err := store.RecordRun(ctx, input, project.ID, project.NameWithNamespace, status); err != nil {
			log.Printf("record run: %v", err)
		}
	}
}

func init() {
	checkCmd.Flags().IntVar(&checkSelect, "select", 0, "for username inputs, check the n-th candidate project")
	rootCmd.AddCommand(checkCmd)
}
