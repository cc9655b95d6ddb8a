// Package notes implements the clinical note pipeline: the template
// registry, the flat-template parser, field merging, Word/PDF export, and
// the narrative generation adapter. A note is a flat mapping of field key
// to free text; PT and OT notes use parallel key sets that never overlap
// (OT keys carry the "ot_" prefix).
package notes

// Namespace selects the PT or OT field-key set.
type Namespace string

const (
	NamespacePT Namespace = "pt"
	NamespaceOT Namespace = "ot"
)

// Valid reports whether ns is one of the two known namespaces.
func (ns Namespace) Valid() bool {
	return ns == NamespacePT || ns == NamespaceOT
}

// Title returns the document heading used by the exporters.
func (ns Namespace) Title() string {
	if ns == NamespaceOT {
		return "Occupational Therapy Evaluation"
	}
	return "Physical Therapy Evaluation"
}

// Key maps a base field key into the namespace. PT keys are unprefixed,
// OT keys carry the "ot_" prefix.
func (ns Namespace) Key(base string) string {
	if ns == NamespaceOT {
		return "ot_" + base
	}
	return base
}

// Fields is a note record: field key -> free text (possibly multi-line).
// Unknown keys are preserved but never rendered.
type Fields map[string]string

// Clone returns a shallow copy of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// labelMapping binds a human-readable line label to a base field key.
// Declaration order matters: the parser tries labels in this order and the
// first prefix match wins.
type labelMapping struct {
	Label string
	Key   string
}

// labelDictionary is the fixed label set shared by both namespaces. The
// parser prefixes keys per namespace via Namespace.Key.
var labelDictionary = []labelMapping{
	{"Medical Diagnosis", "meddiag"},
	{"Medical History/HNP", "history"},
	{"Subjective", "subjective"},
	{"Current Medication(s)", "meds"},
	{"Diagnostic Test(s)", "tests"},
	{"DME/Assistive Device", "dme"},
	{"PLOF", "plof"},
	{"Posture", "posture"},
	{"ROM", "rom"},
	{"Muscle Strength Test", "strength"},
	{"Palpation", "palpation"},
	{"Functional Test(s)", "functional"},
	{"Special Test(s)", "special"},
	{"Current Functional Mobility Impairment(s)", "impairments"},
	{"Goals", "goals"},
	{"Frequency/Duration", "frequency"},
	{"Intervention", "intervention"},
	{"Treatment Procedures", "procedures"},
	{"Area/Location of Injury", "pain_location"},
	{"Onset/Exacerbation Date", "pain_onset"},
	{"Condition of Injury", "pain_condition"},
	{"Mechanism of Injury", "pain_mechanism"},
	{"Pain Rating (P/B/W)", "pain_rating"},
	{"Pain Frequency", "pain_frequency"},
	{"Description", "pain_description"},
	{"Aggravating Factor", "pain_aggravating"},
	{"Relieved By", "pain_relieved"},
	{"Interferes With", "pain_interferes"},
}

// painSections is the ordered sub-list rendered inside the Pain section.
// The rating label is spelled out in exports, unlike the parse label.
var painSections = []labelMapping{
	{"Area/Location of Injury", "pain_location"},
	{"Onset/Exacerbation Date", "pain_onset"},
	{"Condition of Injury", "pain_condition"},
	{"Mechanism of Injury", "pain_mechanism"},
	{"Pain Rating (Present/Best/Worst)", "pain_rating"},
	{"Frequency", "pain_frequency"},
	{"Description", "pain_description"},
	{"Aggravating Factor", "pain_aggravating"},
	{"Relieved By", "pain_relieved"},
	{"Interferes With", "pain_interferes"},
}

// objectiveSections is the ordered sub-list rendered inside the Objective
// section, each as a title followed by its body.
var objectiveSections = []labelMapping{
	{"Posture", "posture"},
	{"ROM", "rom"},
	{"Muscle Strength Test", "strength"},
	{"Palpation", "palpation"},
	{"Functional Test(s)", "functional"},
	{"Special Test(s)", "special"},
	{"Current Functional Mobility Impairment(s)", "impairments"},
}

// KnownKeys returns every field key in the namespace's fixed set, in
// dictionary declaration order, plus the summary key (which has no parse
// label but is rendered by the exporters).
func KnownKeys(ns Namespace) []string {
	keys := make([]string, 0, len(labelDictionary)+1)
	for _, m := range labelDictionary {
		keys = append(keys, ns.Key(m.Key))
	}
	keys = append(keys, ns.Key("summary"))
	return keys
}

// get looks up a base key in the namespace, returning "" when absent.
func get(ns Namespace, f Fields, base string) string {
	return f[ns.Key(base)]
}
