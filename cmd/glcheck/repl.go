package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell",
	Long: `Start an interactive shell for repeated compliance checks.

The shell accepts free-text input (username, project ID, or project URL),
lists candidate projects for usernames, and renders the compliance report
for the selected project. Type 'help' inside the shell for commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		store := openHistory(cfg)
		if store != nil {
			defer store.Close()
		}

		r, err := repl.New(&repl.Config{
			Checker: newChecker(cfg),
			Store:   store,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create REPL: %v\n", err)
			os.Exit(1)
		}

		if err := r.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
