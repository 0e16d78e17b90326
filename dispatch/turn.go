package dispatch

import "github.com/tmc/langchaingo/llms"

// Fixed replies. The dispatch boundary never surfaces an error; every failure
// becomes one of these strings.
const (
	ApologyReply     = "Sorry, I encountered an error. Please try again."
	NoResponseReply  = "No response from AI."
	UnknownToolReply = "Unknown function call received."
	NoConflictsReply = "There are no double-booked aircraft or flight conflicts."
	ConflictsHeader  = "Here are the current warnings about double-booked aircraft:\n"
	EmptySchedule    = "There are currently no scheduled flights."
)

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

func (r Role) messageType() llms.ChatMessageType {
	switch r {
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}

// Turn is one entry of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn, AssistantTurn and SystemTurn build turns of each role.
func UserTurn(content string) Turn      { return Turn{Role: RoleUser, Content: content} }
func AssistantTurn(content string) Turn { return Turn{Role: RoleAssistant, Content: content} }
func SystemTurn(content string) Turn    { return Turn{Role: RoleSystem, Content: content} }

// TurnResult is the outcome of one round.
type TurnResult struct {
	// Reply is the assistant's text for the user. Never empty.
	Reply string `json:"content"`

	// Notes are system turns describing schedule changes made this round.
	Notes []Turn `json:"notes"`

	// DataChanged is true when the round attempted a mutation.
	DataChanged bool `json:"dataChanged"`

	// ToolName is the tool the model asked for, empty for a free-text answer.
	ToolName string `json:"toolName,omitempty"`

	// Err is the failure behind an apology reply, for logging only.
	Err error `json:"-"`
}
