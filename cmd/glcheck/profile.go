package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Check a user's profile repository README",
	Long: `Check whether the user's profile repository (<username>/<username>)
contains a README.md, and print its URL when present. Usernames are
case-sensitive.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		checker := newChecker(cfg)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		result := checker.CheckProfileReadme(context.Background(), args[0])
		if result.Found {
			fmt.Printf("%s README.md is present in the profile repo\n", green("✓"))
			if result.ReadmeURL != "" {
				fmt.Printf("  %s\n", result.ReadmeURL)
			}
		} else {
			fmt.Printf("%s README.md is missing in the profile repo\n", red("✗"))
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
