// ABOUTME: Shows the authenticated user and session status
// ABOUTME: Restores the persisted session the same way the TUI does on startup

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahermansen/todochat/internal/auth"
	"github.com/ahermansen/todochat/internal/store"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, w io.Writer) int {
	env, err := newAppEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer env.Close()

	env.auth.Initialize(ctx)
	if !env.auth.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	profile := env.auth.Profile()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Logged in as: %s <%s> (id %d)\n", profile.Username, profile.Email, profile.ID)
	if token, err := env.store.Get(store.KeyAuthToken); err == nil {
		if exp, ok := auth.TokenExpiry(token); ok {
			fmt.Fprintf(w, "Access token expires: %s\n", exp.Local().Format(time.RFC1123))
		}
	}
	return 0
}
