// ABOUTME: Root command for the todochat CLI
// ABOUTME: Handles global flags and launches the TUI when run bare

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ahermansen/todochat/internal/config"
	"github.com/ahermansen/todochat/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Running it without a subcommand starts
// the interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "todochat",
	Short: "Terminal client for the chat-driven todo backend",
	Long: `todochat is a terminal client for a todo backend with a conversational
assistant. It manages your login session, edits your todo list, and lets
you drive create/read/update/delete operations through natural-language
chat.

Run without arguments to start the interactive TUI.

Environment Variables:
  TODOCHAT_API_URL    Backend API URL (default: ` + config.DefaultAPIURL + `)
  TODOCHAT_LOG_LEVEL  File logger level (default: info)
  TODOCHAT_LOG_FILE   Log file path (default: <data dir>/todochat.log)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		return tui.Run(env.deps())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides TODOCHAT_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("TODOCHAT_API_URL"); envURL != "" {
		return envURL
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
