// ABOUTME: Login and logout commands for scripted use
// ABOUTME: Prompts interactively via huh when credentials are not passed as flags

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend and persist the session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newAppEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		defer env.Close()

		env.auth.Logout()
		fmt.Println("Logged out.")
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(ctx context.Context) int {
	username, password := loginUsername, loginPassword

	if username == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Username").Value(&username),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
			),
		).WithTheme(huh.ThemeBase())

		if err := form.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	env, err := newAppEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer env.Close()

	if err := env.auth.Login(ctx, username, password); err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %s\n", env.auth.LastError())
		return 1
	}

	profile := env.auth.Profile()
	fmt.Printf("Logged in as %s.\n", profile.Username)
	return 0
}
