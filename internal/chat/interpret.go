// ABOUTME: Interprets assistant replies into read-results or write-confirmations
// ABOUTME: Pure classification; triggering a list refetch is the caller's job

package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ahermansen/todochat/internal/domain"
)

// AnswerKind discriminates the interpreted answer variant.
type AnswerKind int

const (
	// AnswerNone means the response carried no answer field. Defined as
	// a no-op: nothing is displayed and nothing is classified.
	AnswerNone AnswerKind = iota
	// AnswerRead is a todo listing returned for a read request.
	AnswerRead
	// AnswerWrite is a free-text confirmation or informational message.
	AnswerWrite
)

// Result is the interpreted form of one chat response.
type Result struct {
	Kind        AnswerKind
	Todos       []domain.Todo // populated when Kind == AnswerRead
	Text        string        // populated when Kind == AnswerWrite
	Op          domain.OperationType
	SessionUUID string // non-empty when the backend rotated the session id
}

// Keyword families for classifying write confirmations. Matching is
// case-insensitive and ordered create > update > delete; a message that
// names several operations takes the first family that matches. This is
// best-effort intent detection, not a semantic guarantee.
var (
	createKeywords = []string{"created", "added"}
	updateKeywords = []string{"updated", "marked", "completed"}
	deleteKeywords = []string{"deleted", "removed"}
)

// Interpret classifies a raw chat response body.
func Interpret(raw []byte) (Result, error) {
	result := Result{}

	if uuid := gjson.GetBytes(raw, "session_uuid"); uuid.Exists() {
		result.SessionUUID = uuid.String()
	}

	answer := gjson.GetBytes(raw, "answer")
	if !answer.Exists() || answer.Type == gjson.Null {
		return result, nil
	}

	if answer.IsArray() {
		todos := []domain.Todo{}
		if err := json.Unmarshal([]byte(answer.Raw), &todos); err != nil {
			return Result{}, fmt.Errorf("answer is not a todo list: %w", err)
		}
		result.Kind = AnswerRead
		result.Todos = todos
		result.Op.IsRead = true
		return result, nil
	}

	text := answer.String()
	result.Kind = AnswerWrite
	result.Text = text
	result.Op = classifyText(text)
	return result, nil
}

func classifyText(text string) domain.OperationType {
	lower := strings.ToLower(text)

	op := domain.OperationType{}
	switch {
	case containsAny(lower, createKeywords):
		op.IsCreate = true
	case containsAny(lower, updateKeywords):
		op.IsUpdate = true
	case containsAny(lower, deleteKeywords):
		op.IsDelete = true
	}
	return op
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Confirmation returns the system message shown after an interpreted
// write, or "" when the response was not a write confirmation.
func (r Result) Confirmation() string {
	switch {
	case r.Op.IsCreate:
		return "Task created successfully"
	case r.Op.IsUpdate:
		return "Task updated successfully"
	case r.Op.IsDelete:
		return "Task deleted successfully"
	}
	return ""
}
