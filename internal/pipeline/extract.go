package pipeline

import (
	"encoding/json"
	"strings"
)

// Object is a parsed JSON object extracted from completion text. Probes are
// deliberately forgiving about value types; the model supplies live data.
type Object map[string]any

// ExtractObject pulls the outermost JSON object out of completion text.
// Markdown fences and surrounding prose are tolerated. ok is false when no
// parseable object exists; callers must branch and apply their own fallback
// instead of probing an empty map.
func ExtractObject(text string) (Object, bool) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return Object(obj), true
}

// String returns the named field as a string, or def when absent or not a
// string.
func (o Object) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the named field as a bool, or def when absent or not a bool.
func (o Object) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// StringSlice returns the named field as a string slice, dropping non-string
// elements.
func (o Object) StringSlice(key string) []string {
	raw, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Lookup walks a dotted path ("configuration.axes") and reports whether a
// value exists there. A "[]" suffix on a segment requires a non-empty array
// whose every element carries the remainder of the path.
func (o Object) Lookup(path string) bool {
	return lookupPath(map[string]any(o), strings.Split(path, "."))
}

func lookupPath(v any, segs []string) bool {
	if len(segs) == 0 {
		return true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	seg := segs[0]
	if name, found := strings.CutSuffix(seg, "[]"); found {
		arr, ok := obj[name].([]any)
		if !ok || len(arr) == 0 {
			return false
		}
		for _, elem := range arr {
			if !lookupPath(elem, segs[1:]) {
				return false
			}
		}
		return true
	}
	child, ok := obj[seg]
	if !ok {
		return false
	}
	return lookupPath(child, segs[1:])
}
