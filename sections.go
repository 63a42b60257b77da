package splitmd

import (
	"strings"

	"github.com/tidwall/gjson"
)

// parseSections decodes a model reply into sections. The reply is expected
// to be a JSON array of strings. Models occasionally wrap the array in a
// code fence despite instructions, so fences are tolerated.
func parseSections(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &CompletionError{Cause: CauseEmpty}
	}
	text = trimFence(text)
	if !gjson.Valid(text) {
		return nil, &CompletionError{Cause: CauseMalformed}
	}
	result := gjson.Parse(text)
	if !result.IsArray() {
		return nil, &CompletionError{Cause: CauseMalformed}
	}
	var sections []string
	for _, item := range result.Array() {
		if item.Type != gjson.String {
			return nil, &CompletionError{Cause: CauseMalformed}
		}
		sections = append(sections, item.String())
	}
	if len(sections) == 0 {
		return nil, &CompletionError{Cause: CauseMalformed}
	}
	return sections, nil
}

// trimFence strips a surrounding markdown code fence, including an optional
// language tag on the opening line.
func trimFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	inner := strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(inner, '\n'); i >= 0 {
		inner = inner[i+1:]
	}
	inner = strings.TrimSuffix(strings.TrimSpace(inner), "```")
	return strings.TrimSpace(inner)
}
