package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSuggestion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "  Led a team of five.  \n", expected: "Led a team of five."},
		{name: "code block with language", input: "```text\nBuilt the billing service.\n```", expected: "Built the billing service."},
		{name: "generic code block", input: "```\nShipped v2\n```", expected: "Shipped v2"},
		{name: "markup stripped", input: "<p>Cut <b>latency</b> by 40%</p>", expected: "Cut latency by 40%"},
		{name: "script dropped", input: `Improved UX<script>alert("x")</script>`, expected: "Improved UX"},
		{name: "entities kept readable", input: "R&D and QA", expected: "R&D and QA"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanSuggestion(tt.input))
		})
	}
}

func TestUnwrapCodeBlock_NoFence(t *testing.T) {
	assert.Equal(t, "text", unwrapCodeBlock("text"))
}
