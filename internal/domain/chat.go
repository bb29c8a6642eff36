// ABOUTME: Chat transcript types for the conversational todo assistant
// ABOUTME: Messages are ephemeral, held in memory for one program run only

package domain

import "time"

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
)

// ChatMessage is one entry in the conversation transcript. Content holds
// free text for most roles; an assistant read-result carries Todos instead.
type ChatMessage struct {
	Role      Role
	Content   string
	Todos     []Todo
	Timestamp time.Time
}

// OperationType tags an interpreted assistant response with the CRUD
// operation it reports. At most one flag is set.
type OperationType struct {
	IsRead   bool
	IsCreate bool
	IsUpdate bool
	IsDelete bool
}

// IsWrite reports whether the response confirms a mutation, meaning the
// caller should refetch the todo list.
func (op OperationType) IsWrite() bool {
	return op.IsCreate || op.IsUpdate || op.IsDelete
}
