package aitext

import (
	"encoding/json"
	"strings"
)

// ExtractIDList pulls a JSON string array out of a model reply that may
// wrap it in prose. It takes the outermost bracketed span, decodes it,
// and keeps non-empty string entries, dropping duplicates while
// preserving order. Returns nil when no usable array is present.
func ExtractIDList(reply string) []string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil
	}

	var raw []any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, entry := range raw {
		id, ok := entry.(string)
		if !ok || id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
