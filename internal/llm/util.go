package llm

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// CleanSuggestion turns raw model output into plain text fit for a form
// field: code fences are unwrapped, markup is stripped and surrounding
// whitespace is trimmed.
func CleanSuggestion(text string) string {
	text = unwrapCodeBlock(strings.TrimSpace(text))
	text = html.UnescapeString(stripPolicy.Sanitize(text))
	return strings.TrimSpace(text)
}

// unwrapCodeBlock removes a surrounding ``` fence and its language tag.
func unwrapCodeBlock(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
