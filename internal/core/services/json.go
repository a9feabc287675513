package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// extractJSON pulls a JSON value out of a model response. Markdown code
// fences are stripped first, then a direct decode is attempted, then a
// bracket scan from the first opening to the last closing brace or
// bracket. Anything else fails with domain.ErrMalformedModelOutput.
func extractJSON(text string) (any, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		text = strings.TrimSpace(strings.Join(kept, "\n"))
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err == nil {
		return value, nil
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start == -1 || end == -1 || end <= start {
			continue
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &value); err == nil {
			return value, nil
		}
	}

	preview := text
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMalformedModelOutput, preview)
}

// extractJSONObject is extractJSON constrained to an object result.
func extractJSONObject(text string) (map[string]any, error) {
	value, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrMalformedModelOutput)
	}
	return obj, nil
}
