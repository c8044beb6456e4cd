package model

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged chat message, serialized as-is into both
// the completion API request and the memory store's add-memories payload.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Turn pairs a user message with the assistant reply to it. Turns are
// ephemeral: built per exchange, handed to the memory store, then discarded.
type Turn struct {
	User      Message
	Assistant Message
}

// NewTurn builds a turn from raw user input and the generated answer.
func NewTurn(userInput, answer string) Turn {
	return Turn{
		User:      Message{Role: RoleUser, Content: userInput},
		Assistant: Message{Role: RoleAssistant, Content: answer},
	}
}

// Messages returns the turn as an ordered message pair.
func (t Turn) Messages() []Message {
	return []Message{t.User, t.Assistant}
}

// Completion is the reply from a chat-completion API.
type Completion struct {
	Choices []Choice
}

// Choice is a single completion candidate.
type Choice struct {
	Message Message
}
