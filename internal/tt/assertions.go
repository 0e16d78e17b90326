package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Message Helpers
// -----------------------------------------------------------------------------

// MessageText concatenates the text parts of a message.
func MessageText(msg llms.MessageContent) string {
	var out string
	for _, p := range msg.Parts {
		if tc, ok := p.(llms.TextContent); ok {
			out += tc.Text
		}
	}
	return out
}

// AssertRoles checks the role of each message in order.
func AssertRoles(t *testing.T, expected []llms.ChatMessageType, msgs []llms.MessageContent) {
	t.Helper()
	require.Len(t, msgs, len(expected), "message count")
	for i, role := range expected {
		assert.Equal(t, role, msgs[i].Role, "role of message %d", i)
	}
}

// AssertToolNames checks the tool names advertised in the captured options.
func AssertToolNames(t *testing.T, expected []string, opts llms.CallOptions) {
	t.Helper()
	names := make([]string, 0, len(opts.Tools))
	for _, tool := range opts.Tools {
		require.NotNil(t, tool.Function)
		names = append(names, tool.Function.Name)
	}
	assert.Equal(t, expected, names)
}
