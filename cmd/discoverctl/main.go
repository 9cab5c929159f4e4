package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alcyxob/exercise-discovery/internal/client"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "discoverctl",
	Short: "Operate the exercise discovery service",
	Long: `discoverctl starts discovery sessions, follows their progress and
previews the search terms a session would use.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("DISCOVERY_SERVER", "http://localhost:8080"), "Discovery service base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("DISCOVERY_TOKEN"), "Bearer token (defaults to $DISCOVERY_TOKEN)")
}

func newClient() *client.Client {
	return client.New(serverURL, authToken, nil)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
