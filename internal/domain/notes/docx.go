package notes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// separator is the fixed-width rule inserted between top-level sections of
// the flowing export.
var separator = strings.Repeat("-", 114)

// flowParagraphs produces the ordered paragraph texts of the flowing
// export. The Word writer consumes this 1:1; keeping the layout pure makes
// section ordering directly checkable.
func flowParagraphs(ns Namespace, f Fields) []string {
	var out []string
	para := func(text string) { out = append(out, text) }
	sep := func() { para(separator) }

	para("Medical Diagnosis: " + get(ns, f, "meddiag"))
	sep()
	para("Medical History/HNP:\n" + get(ns, f, "history"))
	sep()
	para("Subjective:\n" + get(ns, f, "subjective"))
	sep()

	para("Pain:")
	for _, m := range painSections {
		para(m.Label + ": " + get(ns, f, m.Key))
	}
	para("Current Medication(s): " + get(ns, f, "meds"))
	para("Diagnostic Test(s): " + get(ns, f, "tests"))
	para("DME/Assistive Device: " + get(ns, f, "dme"))
	para("PLOF: " + get(ns, f, "plof"))
	sep()

	para("Objective:")
	for _, m := range objectiveSections {
		para(m.Label + ":")
		para(get(ns, f, m.Key))
	}
	sep()

	for _, s := range []struct{ label, key string }{
		{"Assessment Summary:", "summary"},
		{"Goals:", "goals"},
		{"Frequency:", "frequency"},
		{"Intervention:", "intervention"},
		{"Treatment Procedures:", "procedures"},
	} {
		para(s.label)
		para(get(ns, f, s.key))
		sep()
	}
	return out
}

// ExportWord renders a note record as an OOXML word-processing document.
// Sections appear in the fixed evaluation order; missing fields render as
// empty bodies, never omitted sections. Output is deterministic for a
// given input.
func ExportWord(ns Namespace, f Fields) ([]byte, error) {
	if !ns.Valid() {
		return nil, fmt.Errorf("invalid namespace: %q", ns)
	}

	doc := docx.New().WithDefaultTheme()
	for _, text := range flowParagraphs(ns, f) {
		doc.AddParagraph().AddText(text)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
