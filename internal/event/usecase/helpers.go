package usecase

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that model backends often add around JSON output.
func sanitizeJSONResponse(text string) string {
	if matches := codeFenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first { and last }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
