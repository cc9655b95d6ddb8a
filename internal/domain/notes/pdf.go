package notes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Fixed-layout page geometry, in points, measured from the top-left.
// Letter is 612x792pt. Titles are bold 13pt, body lines 11pt at 14pt
// leading; a page break fires once the cursor passes within 60pt of the
// bottom edge and the cursor resets 40pt below the top of the new page.
const (
	pdfPageWidth  = 612.0
	pdfPageHeight = 792.0
	pdfLeftMargin = 40.0
	pdfBodyIndent = 48.0
	pdfTopReset   = 40.0
	pdfBottomPad  = 60.0
	pdfLineHeight = 14.0
)

type pdfText struct {
	Page int
	X, Y float64
	Size float64
	Bold bool
	Text string
}

type pdfRule struct {
	Page int
	Y    float64
}

// pdfLayout is the positioned content of the fixed-layout export, computed
// before any drawing happens.
type pdfLayout struct {
	Pages int
	Texts []pdfText
	Rules []pdfRule
}

// fixedLayout places the document title and every section of the note in
// the fixed evaluation order, breaking pages as the cursor crosses the
// bottom threshold mid-body.
func fixedLayout(ns Namespace, f Fields) pdfLayout {
	l := pdfLayout{Pages: 1}
	page := 1
	y := pdfTopReset

	text := func(x float64, size float64, bold bool, s string) {
		l.Texts = append(l.Texts, pdfText{Page: page, X: x, Y: y, Size: size, Bold: bold, Text: s})
	}

	section := func(title, value string) {
		text(pdfLeftMargin, 13, true, title)
		y += 18
		for _, line := range strings.Split(value, "\n") {
			text(pdfBodyIndent, 11, false, line)
			y += pdfLineHeight
			if y > pdfPageHeight-pdfBottomPad {
				page++
				l.Pages = page
				y = pdfTopReset
			}
		}
		y += 8
		l.Rules = append(l.Rules, pdfRule{Page: page, Y: y})
		y += 16
	}

	text(pdfLeftMargin, 16, true, ns.Title())
	y += 30

	section("Medical Diagnosis:", get(ns, f, "meddiag"))
	section("Medical History/HNP:", get(ns, f, "history"))
	section("Subjective:", get(ns, f, "subjective"))

	painLines := make([]string, 0, len(painSections)+5)
	for _, m := range painSections {
		painLines = append(painLines, m.Label+": "+get(ns, f, m.Key))
	}
	painLines = append(painLines,
		"",
		"Current Medication(s): "+get(ns, f, "meds"),
		"Diagnostic Test(s): "+get(ns, f, "tests"),
		"DME/Assistive Device: "+get(ns, f, "dme"),
		"PLOF: "+get(ns, f, "plof"),
	)
	section("Pain:", strings.Join(painLines, "\n"))

	objLines := []string{"Posture: " + get(ns, f, "posture")}
	for _, m := range objectiveSections[1:] {
		objLines = append(objLines, "", m.Label+": \n"+get(ns, f, m.Key))
	}
	section("Objective:", strings.Join(objLines, "\n"))

	section("Assessment Summary:", get(ns, f, "summary"))
	section("Goals:", get(ns, f, "goals"))
	section("Frequency:", get(ns, f, "frequency"))
	section("Intervention:", get(ns, f, "intervention"))
	section("Treatment Procedures:", get(ns, f, "procedures"))

	return l
}

// ExportPDF renders a note record as a letter-size, manually paginated PDF.
// Same section order and completeness guarantees as ExportWord.
func ExportPDF(ns Namespace, f Fields) ([]byte, error) {
	if !ns.Valid() {
		return nil, fmt.Errorf("invalid namespace: %q", ns)
	}

	layout := fixedLayout(ns, f)

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(0.5)

	for page := 1; page <= layout.Pages; page++ {
		pdf.AddPage()
		for _, t := range layout.Texts {
			if t.Page != page {
				continue
			}
			style := ""
			if t.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, t.Size)
			pdf.Text(t.X, t.Y, t.Text)
		}
		for _, r := range layout.Rules {
			if r.Page != page {
				continue
			}
			pdf.Line(pdfLeftMargin, r.Y, pdfPageWidth-pdfLeftMargin, r.Y)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
