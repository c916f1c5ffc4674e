package llm

import (
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the outermost JSON object out of a model reply.
// Reasoning blocks (<think>...</think>) and markdown code fences are removed
// first; everything before the first '{' and after the last '}' is dropped.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	for {
		thinkStart := strings.Index(cleaned, "<think>")
		if thinkStart == -1 {
			break
		}
		thinkEnd := strings.Index(cleaned, "</think>")
		if thinkEnd == -1 || thinkEnd < thinkStart {
			break
		}
		cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
	}

	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return "", fmt.Errorf("no JSON object found in LLM response: %s", truncate(cleaned, 200))
	}
	return cleaned[jsonStart : jsonEnd+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
