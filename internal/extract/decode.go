package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Matches the first brace-delimited object in free text (greedy, spans lines)
var objectRe = regexp.MustCompile(`(?s)\{.*\}`)

// decodeObject recovers a JSON object from LLM output that may or may
// not be valid JSON. Strict parsing of the whole text is tried first;
// failing that, the first brace-delimited substring is parsed on its own.
func decodeObject(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err == nil && m != nil {
		return m, true
	}

	if frag := objectRe.FindString(text); frag != "" {
		m = nil
		if err := json.Unmarshal([]byte(frag), &m); err == nil && m != nil {
			return m, true
		}
	}

	return nil, false
}

// asString returns the value as an optional string. JSON null and
// missing values map to nil; non-string scalars are not coerced.
func asString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// asStringSlice converts a decoded JSON array to strings, keeping
// string elements and formatting numeric ones
func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case float64:
			out = append(out, formatFloat(t))
		}
	}
	return out
}

func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
