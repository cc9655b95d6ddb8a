package notes

import (
	"bytes"
	"strings"
	"testing"
)

func paragraphIndex(t *testing.T, paras []string, text string) int {
	t.Helper()
	for i, p := range paras {
		if p == text {
			return i
		}
	}
	t.Fatalf("paragraph %q not found", text)
	return -1
}

func TestFlowParagraphsSectionOrder(t *testing.T) {
	f := Fields{
		"meddiag":       "Lumbar strain",
		"pain_location": "L-spine",
		"procedures":    "97110 Therapeutic Exercise",
	}
	paras := flowParagraphs(NamespacePT, f)

	diag := paragraphIndex(t, paras, "Medical Diagnosis: Lumbar strain")
	pain := paragraphIndex(t, paras, "Area/Location of Injury: L-spine")
	procTitle := paragraphIndex(t, paras, "Treatment Procedures:")
	if !(diag < pain && pain < procTitle) {
		t.Errorf("section order broken: diag=%d pain=%d procedures=%d", diag, pain, procTitle)
	}
	if procTitle+1 >= len(paras) || paras[procTitle+1] != "97110 Therapeutic Exercise" {
		t.Errorf("procedures body out of place: %q", paras[procTitle+1])
	}
}

func TestFlowParagraphsRendersEmptySections(t *testing.T) {
	paras := flowParagraphs(NamespacePT, Fields{})
	// Empty fields render as empty bodies, never dropped sections.
	paragraphIndex(t, paras, "PLOF: ")
	paragraphIndex(t, paras, "Goals:")
	paragraphIndex(t, paras, "Pain Rating (Present/Best/Worst): ")
}

func TestFlowParagraphsOTNamespace(t *testing.T) {
	paras := flowParagraphs(NamespaceOT, Fields{"ot_meddiag": "Rotator cuff tear"})
	paragraphIndex(t, paras, "Medical Diagnosis: Rotator cuff tear")
}

func TestParseExportRoundTrip(t *testing.T) {
	// Every flat-text built-in, parsed and exported, must reproduce each
	// non-empty field's text in the paragraph stream unchanged modulo
	// trimming.
	ran := 0
	for _, tpl := range builtinTemplates() {
		if tpl.Text == "" {
			continue
		}
		ran++
		t.Run(tpl.Name, func(t *testing.T) {
			fields := ParseTemplate(tpl.Namespace, tpl.Text)
			joined := strings.Join(flowParagraphs(tpl.Namespace, fields), "\n")
			for _, key := range KnownKeys(tpl.Namespace) {
				v := strings.TrimSpace(fields[key])
				if v == "" {
					continue
				}
				if !strings.Contains(joined, v) {
					t.Errorf("field %s content lost in export:\n%q", key, v)
				}
			}
		})
	}
	if ran == 0 {
		t.Fatal("no flat-text templates to round-trip")
	}
}

func TestExportWordProducesDocument(t *testing.T) {
	data, err := ExportWord(NamespacePT, Fields{"meddiag": "Lumbar strain"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}

func TestExportWordInvalidNamespace(t *testing.T) {
	if _, err := ExportWord(Namespace("speech"), Fields{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFixedLayoutTitleAndFirstSection(t *testing.T) {
	l := fixedLayout(NamespaceOT, Fields{"ot_meddiag": "Rotator cuff tear"})
	if len(l.Texts) == 0 {
		t.Fatal("empty layout")
	}
	title := l.Texts[0]
	if title.Text != "Occupational Therapy Evaluation" || !title.Bold || title.Size != 16 {
		t.Errorf("title = %+v", title)
	}
	if title.Y != pdfTopReset || title.Page != 1 {
		t.Errorf("title position = %+v", title)
	}

	head := l.Texts[1]
	if head.Text != "Medical Diagnosis:" || head.Y != pdfTopReset+30 {
		t.Errorf("first section head = %+v", head)
	}
	body := l.Texts[2]
	if body.Text != "Rotator cuff tear" || body.X != pdfBodyIndent {
		t.Errorf("first section body = %+v", body)
	}
}

func TestFixedLayoutPageBreak(t *testing.T) {
	base := fixedLayout(NamespacePT, Fields{})

	long := Fields{"goals": strings.TrimSuffix(strings.Repeat("Pt will improve tolerance.\n", 100), "\n")}
	l := fixedLayout(NamespacePT, long)
	if l.Pages <= base.Pages {
		t.Fatalf("pages = %d, want more than baseline %d", l.Pages, base.Pages)
	}

	// The first line after a break restarts at the top cursor position.
	restarted := false
	for _, tx := range l.Texts {
		if tx.Page > 1 && tx.Y == pdfTopReset && !tx.Bold {
			restarted = true
			break
		}
	}
	if !restarted {
		t.Error("no body line restarted at the top of a later page")
	}
}

func TestExportPDFProducesDocument(t *testing.T) {
	data, err := ExportPDF(NamespacePT, Fields{"meddiag": "Lumbar strain"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestExportPDFInvalidNamespace(t *testing.T) {
	if _, err := ExportPDF(Namespace("speech"), Fields{}); err == nil {
		t.Fatal("expected error")
	}
}
