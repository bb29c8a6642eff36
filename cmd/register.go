// ABOUTME: Account registration command with implicit login
// ABOUTME: The user-visible outcome is the auto-login step's outcome

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
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(ctx context.Context) int {
	username, email, password := registerUsername, registerEmail, registerPassword

	if username == "" || email == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Username").Value(&username),
				huh.NewInput().Title("Email").Value(&email),
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

	if err := env.auth.Register(ctx, username, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "Registration failed: %s\n", env.auth.LastError())
		return 1
	}

	fmt.Printf("Account created. Logged in as %s.\n", env.auth.Profile().Username)
	return 0
}
