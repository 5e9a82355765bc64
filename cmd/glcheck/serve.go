package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codehealth/glcheck/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compliance checker as an HTTP API",
	Long: `Expose the compliance checker over HTTP:

  GET /v1/check?input=<username|id|url>     classify and evaluate
  GET /v1/projects/:id/compliance           evaluate a project by ID
  GET /v1/profile/:username/readme          profile README check
  GET /v1/history                           recent recorded runs`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		store := openHistory(cfg)
		if store != nil {
			defer store.Close()
		}

		g := server.New(newChecker(cfg), store)
		fmt.Printf("Listening on %s\n", serveAddr)
		if err := g.Run(serveAddr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
