package notes

import (
	"encoding/json"
	"strings"
)

// Merge consolidates a template's base fields with therapist-entered
// overrides and generated narrative insertions into one note record.
//
// For every key in the union of base and overrides, a non-empty override
// wins; otherwise the base value is kept. Insertions overwrite their target
// key unconditionally. Keys absent from all three inputs are not invented.
// All stored values are trimmed.
func Merge(base, overrides Fields, insertions map[string]string) Fields {
	out := make(Fields, len(base)+len(overrides)+len(insertions))
	for k, v := range base {
		out[k] = strings.TrimSpace(v)
	}
	for k, v := range overrides {
		v = strings.TrimSpace(v)
		if v != "" {
			out[k] = v
		} else if _, ok := out[k]; !ok {
			out[k] = ""
		}
	}
	for k, v := range insertions {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// NormalizeLegacyGoals repairs goals values that were stored as a wrapped
// generation result object instead of plain text. If the namespace's goals
// value starts with "{" it is parsed as JSON and the "result" string is
// extracted; on any failure the original text is kept. Applied on load
// only; new writes are always plain text.
func NormalizeLegacyGoals(ns Namespace, f Fields) {
	key := ns.Key("goals")
	v, ok := f[key]
	if !ok || !strings.HasPrefix(strings.TrimSpace(v), "{") {
		return
	}
	var wrapped struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal([]byte(v), &wrapped); err != nil || wrapped.Result == "" {
		return
	}
	f[key] = strings.TrimSpace(wrapped.Result)
}
