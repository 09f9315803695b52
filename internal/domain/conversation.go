package domain

// Chat roles understood by the completion endpoint.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered sequence of turns sent with one summarization
// request. Values are immutable: WithUser returns a grown copy, so turns can
// never leak between runs.
type Conversation struct {
	turns []Message
}

// NewConversation seeds a conversation with a single system instruction.
func NewConversation(system string) Conversation {
	return Conversation{turns: []Message{{Role: RoleSystem, Content: system}}}
}

// WithUser returns a copy of the conversation with one user turn appended.
// Empty content is kept as a turn rather than skipped.
func (c Conversation) WithUser(content string) Conversation {
	turns := make([]Message, 0, len(c.turns)+1)
	turns = append(turns, c.turns...)
	turns = append(turns, Message{Role: RoleUser, Content: content})
	return Conversation{turns: turns}
}

// Messages returns the turns in order.
func (c Conversation) Messages() []Message {
	out := make([]Message, len(c.turns))
	copy(out, c.turns)
	return out
}
