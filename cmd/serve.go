// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/ghsum/ghsum/internal/gateway"
	"github.com/ghsum/ghsum/internal/usecase"
	"github.com/ghsum/ghsum/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the profile summary web server",
	Long:  `Starts an HTTP server that serves the analyzer form and summarizes the GitHub profile submitted through it.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Get the verbose flag from the root command to set up the debug logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		addr, _ := cmd.Flags().GetString("addr")
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			os.Exit(1)
		}

		// Inject dependencies and wire up the HTTP handler.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger)

		// Request logging stays on regardless of --verbose; only the
		// per-fetch debug output is gated by the flag.
		serverLogger := log.New(os.Stderr, "", log.LstdFlags)
		handler := web.NewHandler(web.NewHTMLRenderer(), serverLogger, aggregator)

		mux := http.NewServeMux()
		handler.RegisterRoutes(mux)

		serverLogger.Printf("Starting ghsum on http://localhost%s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address for the web server")
}
