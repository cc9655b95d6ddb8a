package notes

import "strings"

// ParseTemplate converts flat labeled template text into a complete field
// mapping for the namespace. Every dictionary key is present in the result;
// keys with no matching label default to "".
//
// Lines are trimmed and checked against each label in declaration order for
// a "<label>:" prefix. The first match selects the field and the remainder
// of the line (after the first colon, trimmed) overwrites its value.
// Non-empty lines with no label match append to the most recently matched
// field with a newline separator; blank lines are dropped and do not break
// continuation.
//
// Matching is prefix-based on purpose: body text that happens to begin with
// a known "Label:" starts a new section. Stored templates rely on this
// behavior, so it is kept rather than tightened.
func ParseTemplate(ns Namespace, text string) Fields {
	fields := make(Fields, len(labelDictionary))
	for _, m := range labelDictionary {
		fields[ns.Key(m.Key)] = ""
	}

	curr := ""
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		matched := false
		for _, m := range labelDictionary {
			if strings.HasPrefix(stripped, m.Label+":") {
				curr = ns.Key(m.Key)
				_, val, _ := strings.Cut(stripped, ":")
				fields[curr] = strings.TrimSpace(val)
				matched = true
				break
			}
		}
		if !matched && curr != "" && stripped != "" {
			fields[curr] += "\n" + stripped
		}
	}
	return fields
}
