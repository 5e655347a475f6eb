// Package normalize recovers structured data from the model's free-text
// output. The hosted model is asked for JSON but routinely wraps it in
// prose or markdown fences; every tool handler runs its response through
// this package before trusting a single field.
package normalize

import (
	"encoding/json"
	"strings"
)

// ExtractObject recovers a JSON object from raw model output. It trims
// whitespace and markdown code-fence markers, then parses the widest
// {...} substring. The second return is false when no object could be
// recovered; callers keep the raw text for diagnostics in that case.
func ExtractObject(raw string) (map[string]any, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ExtractObjectOr returns the recovered object, or fallback unchanged when
// recovery fails.
func ExtractObjectOr(raw string, fallback map[string]any) map[string]any {
	if obj, ok := ExtractObject(raw); ok {
		return obj
	}
	return fallback
}

// decodeInto round-trips a recovered map into a typed struct. Fields the
// model omitted or mistyped simply stay zero; the normalizers repair them.
func decodeInto(obj map[string]any, v any) {
	if obj == nil {
		return
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return
	}
	_ = json.Unmarshal(b, v)
}
