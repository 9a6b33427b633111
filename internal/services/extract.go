package services

import (
	"strings"

	"github.com/GregMSThompson/status-assistant/internal/dto"
)

// ExtractText returns the reply text of a model response: the consolidated
// text when present, otherwise the non-reasoning text parts joined by
// newlines, otherwise a placeholder. It never returns an empty string.
func ExtractText(resp dto.ModelResponse) string {
	if resp.Text != "" {
		return resp.Text
	}

	var texts []string
	for _, part := range resp.Parts {
		if p, ok := part.(dto.TextPart); ok && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	if joined := strings.Join(texts, "\n"); joined != "" {
		return joined
	}
	return noAnswerPlaceholder
}
