// ABOUTME: List command printing the filtered todo collection
// ABOUTME: Suited for scripts: --json output and non-zero exit codes on failure

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/todo"
)

var (
	listStatus   string
	listPriority string
	listDue      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your todos",
	Long:  `Fetch and display the todo list for the logged-in user, optionally filtered by status, priority, and due date.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", todo.FilterAll, "Filter by status (All, Pending, In Progress, Completed)")
	listCmd.Flags().StringVar(&listPriority, "priority", todo.FilterAll, "Filter by priority (All, Low, Medium, High)")
	listCmd.Flags().StringVar(&listDue, "due", string(todo.DueAll), "Filter by due date (all, today, upcoming, overdue)")
	rootCmd.AddCommand(listCmd)
}

// runList executes the list fetch and returns an exit code.
func runList(ctx context.Context, w io.Writer) int {
	env, err := newAppEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer env.Close()

	env.auth.Initialize(ctx)
	if !env.auth.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in. Run `todochat login` first.")
		return 1
	}

	controller := todo.NewController(env.client, env.logger,
		func() int { return env.auth.Profile().ID },
		env.auth.Logout)

	if err := controller.FetchAll(ctx); err != nil {
		fmt.Fprintf(w, "Error: %s\n", domain.UserMessage(err, "Failed to load todos"))
		return 2
	}

	criteria := todo.Criteria{
		Status:   listStatus,
		Priority: listPriority,
		Due:      todo.DueFilter(listDue),
	}
	filtered := todo.Filter(controller.Todos(), criteria, time.Now())

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatTodosHuman(filtered, criteria))
	return 0
}

// formatTodosHuman renders the collection as an aligned text table.
func formatTodosHuman(todos []domain.Todo, criteria todo.Criteria) string {
	if len(todos) == 0 {
		if criteria.Active() {
			return "No todos match the current filters."
		}
		return "No todos yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-5s %-12s %-12s %-11s %s\n", "ID", "DUE", "STATUS", "PRIORITY", "NOTES")
	for _, t := range todos {
		due := "-"
		if parsed, ok := t.DueTime(); ok {
			due = parsed.Format("2006-01-02")
		}
		fmt.Fprintf(&sb, "%-5d %-12s %-12s %-11s %s\n", t.ID, due, t.Status, t.Priority, t.Notes)
	}
	fmt.Fprintf(&sb, "\n%d todo(s)", len(todos))
	return sb.String()
}
