package analysis

import (
	"encoding/json"
	"strings"
)

const (
	maxSuggestions      = 5
	minSuggestionLength = 10
)

// suggestionKind tags how the provider output was understood.
type suggestionKind int

const (
	suggestionEmpty suggestionKind = iota
	suggestionStructured
	suggestionFreeText
)

// parsedSuggestions is the tagged result of classifying provider output
// before normalization.
type parsedSuggestions struct {
	kind  suggestionKind
	items []string
	text  string
}

// parseSuggestions turns untrusted provider output into at most five
// usable suggestions. The output is never trusted to be well formed: code
// fences are stripped, a structured parse is attempted first and free text
// falls back to line splitting. Unusable output yields an empty list, not
// an error.
func parseSuggestions(raw string) []string {
	parsed := classifySuggestions(raw)
	switch parsed.kind {
	case suggestionStructured:
		return normalizeSuggestions(parsed.items)
	case suggestionFreeText:
		return normalizeSuggestions(splitSuggestionLines(parsed.text))
	default:
		return []string{}
	}
}

func classifySuggestions(raw string) parsedSuggestions {
	text := stripCodeFences(raw)
	if text == "" {
		return parsedSuggestions{kind: suggestionEmpty}
	}

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return parsedSuggestions{kind: suggestionStructured, items: list}
	}

	var wrapped struct {
		Suggestions  []string `json:"suggestions"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil {
		if len(wrapped.Suggestions) > 0 {
			return parsedSuggestions{kind: suggestionStructured, items: wrapped.Suggestions}
		}
		if len(wrapped.Improvements) > 0 {
			return parsedSuggestions{kind: suggestionStructured, items: wrapped.Improvements}
		}
	}

	return parsedSuggestions{kind: suggestionFreeText, text: text}
}

// stripCodeFences removes a surrounding markdown code block, if any.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func splitSuggestionLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, trimBullet(line))
	}
	return out
}

// trimBullet strips list markers ("-", "*", "3.", "2)") from a line.
func trimBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch >= '0' && ch <= '9' {
			continue
		}
		if (ch == '.' || ch == ')') && i > 0 {
			return strings.TrimSpace(line[i+1:])
		}
		break
	}
	return strings.TrimSpace(line)
}

// normalizeSuggestions drops entries too short to be actionable and caps
// the list at five.
func normalizeSuggestions(items []string) []string {
	out := make([]string, 0, maxSuggestions)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if len(item) < minSuggestionLength {
			continue
		}
		out = append(out, item)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
