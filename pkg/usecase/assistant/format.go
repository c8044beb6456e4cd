package assistant

import (
	"fmt"
	"strings"
)

const noMemoriesFound = "No memories found."

// Normalize coerces a raw memory store response into a flat list of
// record-like values. The store returns plain lists, {"results": [...]}
// envelopes, bare objects, or raw text depending on the endpoint; unknown
// shapes are wrapped as a single item so downstream rendering stays uniform.
// Never fails.
func Normalize(v any) []any {
	if v == nil {
		return []any{}
	}

	switch vv := v.(type) {
	case []any:
		return vv
	case map[string]any:
		if results, ok := vv["results"].([]any); ok {
			return results
		}
		return []any{vv}
	}

	return []any{v}
}

// FormatMemories renders a memory store response as a bounded human-readable
// block, one line per record in store order. Missing or malformed fields
// degrade to defaults; this function never fails.
func FormatMemories(v any, limit int) string {
	items := Normalize(v)
	if len(items) == 0 {
		return noMemoriesFound
	}
	if limit < len(items) {
		items = items[:limit]
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			lines = append(lines, fmt.Sprintf("%v", item))
			continue
		}
		lines = append(lines, formatRecord(record))
	}

	return strings.Join(lines, "\n")
}

func formatRecord(record map[string]any) string {
	id := stringField(record, "id")
	if id == "" {
		id = stringField(record, "_id")
	}
	if id == "" {
		id = "?"
	}

	text := stringField(record, "text")
	if text == "" {
		text = stringField(record, "memory")
	}
	if text == "" {
		if data, ok := record["data"].(map[string]any); ok {
			text = stringField(data, "memory")
		}
	}
	if text == "" {
		text = fmt.Sprintf("%v", record)
	}

	meta, ok := record["metadata"].(map[string]any)
	if !ok {
		meta, _ = record["meta"].(map[string]any)
	}

	var flags []string
	if source := stringField(meta, "source"); source != "" {
		flags = append(flags, source)
	}
	if truthy(meta["important"]) {
		flags = append(flags, "important")
	}

	prefix := "[" + id + "]"
	if len(flags) > 0 {
		prefix += " (" + strings.Join(flags, ", ") + ")"
	}
	return prefix + " " + text
}

// stringField renders a record field, skipping absent or falsy values so
// fallback chains work the same for "" and for missing keys.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || !truthy(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// truthy covers the value shapes encoding/json produces.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
