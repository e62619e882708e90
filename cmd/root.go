package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/clierror"
)

var Version = "dev"

// Global flag values, read by loadEnvironment.
var (
	jsonOutput bool
	verbose    bool
	apiURL     string
	tokenFile  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pm",
	Short: "Prediction Market CLI",
	Long: `A CLI for browsing events and trading shares on a prediction market server.

Examples:
  pm list              # List events
  pm event 1           # Show an event and its stocks
  pm stock 5           # Show a stock's order book
  pm buy 5             # Buy shares interactively`,
	Version:       Version,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log HTTP requests to stderr")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Market server URL (overrides config and PMARKET_API_URL)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "File holding the session token")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/pm/config.yaml)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.User(err.Error())
	})
}

// GetJSONMode returns whether JSON output mode is enabled.
func GetJSONMode() bool {
	return jsonOutput
}

// Execute runs the CLI. Errors are printed to stderr and the process exits
// with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, clierror.Format(err))
		os.Exit(1)
	}
}
