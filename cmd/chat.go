// ABOUTME: One-shot chat command sending a single message to the assistant
// ABOUTME: Prints either a todo summary list or the assistant's confirmation text

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ahermansen/todochat/internal/chat"
	"github.com/ahermansen/todochat/internal/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send one message to the todo assistant",
	Long: `Send a natural-language message to the assistant and print its reply.
The message joins the persisted conversation, so follow-ups keep their
context across invocations.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runChat(ctx, os.Stdout, strings.Join(args, " ")); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(ctx context.Context, w io.Writer, message string) int {
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

	sessionID, err := env.session.GetOrCreate()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	raw, err := env.client.Chat(ctx, env.auth.Profile().ID, message, sessionID)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", domain.UserMessage(err, "Failed to send message"))
		return 2
	}

	result, err := chat.Interpret(raw)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if result.SessionUUID != "" {
		if err := env.session.Update(result.SessionUUID); err != nil {
			env.logger.Warn("failed to persist session id")
		}
	}

	switch result.Kind {
	case chat.AnswerRead:
		fmt.Fprintln(w, formatChatTodos(result.Todos))
	case chat.AnswerWrite:
		fmt.Fprintln(w, result.Text)
		if msg := result.Confirmation(); msg != "" {
			fmt.Fprintln(w, msg)
		}
	default:
		// No answer field is a defined no-op.
	}
	return 0
}

func formatChatTodos(todos []domain.Todo) string {
	if len(todos) == 0 {
		return "No todos found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d todo(s):\n", len(todos))
	for _, t := range todos {
		due := "-"
		if parsed, ok := t.DueTime(); ok {
			due = parsed.Format("2006-01-02")
		}
		fmt.Fprintf(&sb, "  [%d] %s (%s, %s, due %s)\n", t.ID, t.Notes, t.Status, t.Priority, due)
	}
	return strings.TrimRight(sb.String(), "\n")
}
