package dispatch

import "context"

// Conversation keeps the history for a single chat session and appends each
// round to it once the round completes.
type Conversation struct {
	agent   *Agent
	history []Turn
}

// NewConversation starts an empty conversation.
func NewConversation(agent *Agent) *Conversation {
	return &Conversation{agent: agent}
}

// WithHistory seeds the conversation with earlier turns.
func (c *Conversation) WithHistory(turns []Turn) *Conversation {
	c.history = append([]Turn(nil), turns...)
	return c
}

// Send runs one round. Afterwards the history holds the utterance, any system
// notes from the round, then the reply.
func (c *Conversation) Send(ctx context.Context, utterance string) *TurnResult {
	result := c.agent.Next(ctx, c.History(), utterance)

	c.history = append(c.history, UserTurn(utterance))
	c.history = append(c.history, result.Notes...)
	c.history = append(c.history, AssistantTurn(result.Reply))
	return result
}

// History returns a copy of the turns so far.
func (c *Conversation) History() []Turn {
	return append([]Turn(nil), c.history...)
}

// Agent returns the agent the conversation runs on.
func (c *Conversation) Agent() *Agent {
	return c.agent
}

// Reset clears the history.
func (c *Conversation) Reset() {
	c.history = nil
}
