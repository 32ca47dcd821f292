package generative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"message":"hola"}`, `{"message":"hola"}`},
		{"json fence", "```json\n{\"message\":\"hola\"}\n```", `{"message":"hola"}`},
		{"bare fence", "```\n{\"message\":\"hola\"}\n```", `{"message":"hola"}`},
		{"surrounding prose", `Here you go: {"message":"hola"} hope it helps`, `{"message":"hola"}`},
		{"nested braces", `{"a":{"b":1}}`, `{"a":{"b":1}}`},
		{"no braces passes through", "just text", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.input))
		})
	}
}

func TestChatPrompt(t *testing.T) {
	t.Run("embeds message", func(t *testing.T) {
		prompt := chatPrompt("quiero comer", "")
		assert.Contains(t, prompt, `"quiero comer"`)
		assert.NotContains(t, prompt, "Conversation context")
	})

	t.Run("embeds context when present", func(t *testing.T) {
		prompt := chatPrompt("hola", "prefers vegetarian food")
		assert.Contains(t, prompt, "prefers vegetarian food")
	})
}
