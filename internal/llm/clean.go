package llm

import "strings"

// CleanJSON returns the body of a model reply that may be wrapped in a
// markdown code fence, with or without a language tag.
func CleanJSON(input string) string {
	body := strings.TrimSpace(input)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	// Drop an info string such as "json" on the opening fence line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[\"") {
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
