package parsing

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// CleanJSONBlock removes markdown code block wrappers from LLM replies.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not
// to. Tolerates: no fences, fences on both ends, fences with or without a
// language tag, and surrounding whitespace.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// Recover strips incidental fence formatting from a raw LLM reply and parses
// it into a structured record. It does not validate key presence; absent keys
// are the normalizer's concern.
func Recover(raw string) (types.StructuredRecord, error) {
	cleaned := CleanJSONBlock(raw)

	var record types.StructuredRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, &ParseRecoveryError{
			Message: "reply is not a JSON object",
			Snippet: snippet(raw),
			Cause:   err,
		}
	}
	if record == nil {
		return nil, &ParseRecoveryError{
			Message: "reply parsed to null",
			Snippet: snippet(raw),
		}
	}

	return record, nil
}
