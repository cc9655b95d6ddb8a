package notes

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template is one catalog entry. Either Fields is populated directly or
// Text holds flat labeled text that is parsed on first resolution.
// Templates are immutable once registered.
type Template struct {
	Name      string    `yaml:"name"`
	Namespace Namespace `yaml:"namespace"`
	Fields    Fields    `yaml:"fields,omitempty"`
	Text      string    `yaml:"text,omitempty"`
}

// Registry is an append-only catalog of named note templates, read-only
// after startup. Lookups resolve flat-text templates through the parser.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byKey map[string]Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Template)}
}

func regKey(ns Namespace, name string) string {
	return string(ns) + "/" + name
}

// Register adds a template. Names are unique per namespace; re-registering
// an existing name is an error (the catalog is append-only).
func (r *Registry) Register(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if !t.Namespace.Valid() {
		return fmt.Errorf("invalid namespace: %q", t.Namespace)
	}
	if t.Fields == nil && t.Text == "" {
		return fmt.Errorf("template %q has neither fields nor text", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := regKey(t.Namespace, t.Name)
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("template %q already registered in namespace %s", t.Name, t.Namespace)
	}
	r.byKey[key] = t
	r.order = append(r.order, key)
	return nil
}

// Names lists template names in one namespace, in registration order.
func (r *Registry) Names(ns Namespace) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, key := range r.order {
		t := r.byKey[key]
		if t.Namespace == ns {
			names = append(names, t.Name)
		}
	}
	return names
}

// Resolve returns the template's field mapping, parsing flat text if
// needed. The returned map is a copy; callers may mutate it freely.
func (r *Registry) Resolve(ns Namespace, name string) (Fields, error) {
	r.mu.RLock()
	t, ok := r.byKey[regKey(ns, name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %q not found in namespace %s", name, ns)
	}
	if t.Fields != nil {
		return t.Fields.Clone(), nil
	}
	return ParseTemplate(ns, t.Text), nil
}

// LoadCatalog registers templates from a YAML catalog file. The file holds
// a list of Template entries. Duplicate names fail the load so a bad
// catalog is caught at startup rather than shadowing built-ins.
func (r *Registry) LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template catalog: %w", err)
	}
	var entries []Template
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse template catalog %s: %w", path, err)
	}
	for _, t := range entries {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
	}
	return nil
}

// DefaultRegistry returns a registry seeded with the built-in evaluation
// templates.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range builtinTemplates() {
		// Built-ins are distinct by construction.
		_ = r.Register(t)
	}
	return r
}

func builtinTemplates() []Template {
	return []Template{
		{
			Name:      "LBP Eval",
			Namespace: NamespacePT,
			Fields: Fields{
				"meddiag":          "",
				"history":          "",
				"subjective":       "Pt reports having LBP and is limiting daily functional activities. Pt would like to decrease pain and improve activity tolerance and return to PLOF. Pt agrees to PT evaluation.",
				"pain_location":    "L-spine paraspinal, B QL, B gluteus medius",
				"pain_onset":       "Chronic",
				"pain_condition":   "Chronic",
				"pain_mechanism":   "Muscle tension, stenosis, increased tone, structural changes",
				"pain_rating":      "5/10, 0/10, 7/10",
				"pain_frequency":   "Intermittent",
				"pain_description": "Sharp, Tense, Aching.",
				"pain_aggravating": "Sitting, standing, walking, forward bending, lifting/pulling.",
				"pain_relieved":    "Pain meds prn and rest.",
				"pain_interferes":  "Functional mobility, ADLs, sleep.",
				"meds":             "See medication list",
				"tests":            "N/A",
				"dme":              "N/A",
				"plof":             "Independent with mobility and ADLs",
				"posture":          "Forward head lean, rounded shoulders, protracted scapular, slouch posture, decrease sitting postural awareness, loss of lumbar lordosis.",
				"rom":              "Trunk Flexion: 50% limited\nTrunk Extension: 50% limited\nTrunk SB Left: 50% limited\nTrunk SB Right: 50% limited\nTrunk Rotation Left: 50% limited\nTrunk Rotation Right: 50% limited",
				"strength":         "Gross Core Strength: 3/5\nGross Hip Strength: L/R  3/5; 3/5\nGross Knee Strength: L/R  3/5; 3/5\nGross Ankle Strength: L/R  3/5; 3/5",
				"palpation":        "TTP: B QL, B gluteus medius, B piriformis, B paraspinal.\nJoint hypomobility: L1-L5 with central PA.\nIncreased paraspinal and gluteus medius tone",
				"functional":       "Supine Sit Up Test: Unable\n30 seconds Chair Sit to Stand: 6x w/ increase LBP\nSingle Leg Balance Test: B LE: <1 sec with loss of balance.\nSingle Heel Raises Test: Unremarkable\nWalking on Toes:\nWalking on Heels:\nFunctional Squat:",
				"special":          "(-) Slump Test\n(-) Unilateral SLR Test\n(-) Double SLR\n(-) Spring/Central PA\n(-) Piriformis test\n(-) SI Cluster Test",
				"impairments":      "Prolonged sitting: 5 min\nStanding: 5 min\nWalking: 5 min\nBending, sweeping, cleaning, lifting: 5 min.",
				"goals":            "Short-Term Goals (1–12 visits):\n1. Pt will report a reduction in low back pain to ≤1/10 to allow safe and comfortable participation in functional activities.\n2. Pt will demonstrate a ≥10% improvement in trunk AROM to enhance mobility and reduce risk of reinjury during daily tasks.\n3. Pt will improve gross LE strength by at least 0.5 muscle grade to enhance safety during ADLs and minimize pain/injury risk.\n4. Pt will self-report ≥50% improvement in functional limitations related to ADLs.\nLong-Term Goals (13–25 visits):\n1. Pt will demonstrate B LE strength of ≥4/5 to independently and safely perform all ADLs.\n2. Pt will complete ≥14 repetitions on the 30-second chair sit-to-stand test to reduce fall risk.\n3. Pt will tolerate ≥30 minutes of activity to safely resume household tasks without limitation.\n4. Pt will demonstrate independence with HEP, using proper body mechanics and strength to support safe return to ADLs without difficulty.",
				"frequency":        "1wk1, 2wk12",
				"intervention":     "Manual Therapy (STM/IASTM/Joint Mob), Therapeutic Exercise, Therapeutic Activities, Neuromuscular Re-education, Gait Training, Balance Training, Pain Management Training, Modalities ice/heat 10-15min, E-Stim, Ultrasound, fall/injury prevention training, safety education/training, HEP education/training.",
				"procedures":       "97161 Low Complexity\n97162 Moderate Complexity\n97163 High Complexity\n97140 Manual Therapy\n97110 Therapeutic Exercise\n97530 Therapeutic Activity\n97112 Neuromuscular Re-ed\n97116 Gait Training",
			},
		},
		{
			Name:      "Knee TKA Eval",
			Namespace: NamespacePT,
			Fields: Fields{
				"meddiag":          "",
				"history":          "",
				"subjective":       "Pt states s/p TKA and agreeable to PT evaluation. Pt reports having pain and swelling to the knee region and hasn't been using ice too much.",
				"pain_location":    "Knee",
				"pain_onset":       "",
				"pain_condition":   "Acute",
				"pain_mechanism":   "Post op swelling due to surgery",
				"pain_rating":      "5/10, 3/10, 7/10",
				"pain_frequency":   "Intermittent",
				"pain_description": "Sharp, Tension, Aching, dull/heaviness",
				"pain_aggravating": "Sitting, standing, walking, bed mobility.",
				"pain_relieved":    "Pain meds prn, ice, rest, elevation",
				"pain_interferes":  "Functional mobility, ADLs, sleep.",
				"meds":             "See medication list",
				"tests":            "N/A",
				"dme":              "FWW",
				"plof":             "Independent with mobility and ADLs.",
				"posture":          "Forward head lean, rounded shoulders, protracted scapular, slouch posture, decrease sitting postural awareness, loss of lumbar lordosis.",
				"rom":              "Hip Gross: WNL / WNL\nKnee Flex: \nKnee Ext:\nAnkle Gross: WNL / WNL",
				"strength":         "Hip Gross: 4/5 / 4/5\nKnee Flex: 3/5* / 3/5*\nKnee Ext: 3/5* / 3/5*\nAnkle Gross: 4/5 / 4/5",
				"palpation":        "TTP: B Quads, hamstring, knee swelling, warmth, tenderness periarticular",
				"functional":       "Bed Mobility: SBA\n30 seconds Chair Sit to Stand: 2x w/ Knee pain\nSLB Test: Unable loss of balance\nSingle Heel Raises Test: 50% from full range, guarding at knee\nFunctional Squat: Unable",
				"special":          "NT",
				"impairments":      "Prolonged sitting: 5 min\nStanding: 5 min\nWalking: 5 min\nStep/stairs: 1 step",
				"goals":            "Short-Term Goals (1–12 visits):\n1. Pt will report a reduction in knee pain to ≤1/10 to allow safe and comfortable participation in functional activities.\n2. Pt will demonstrate a ≥10% improvement in knee AROM to enhance mobility and reduce risk of reinjury during daily tasks.\n3. Pt will improve gross LE strength by at least 0.5 muscle grade to enhance safety during ADLs and minimize pain/injury risk.\n4. Pt will self-report ≥50% improvement in functional limitations related to ADLs.\nLong-Term Goals (13–25 visits):\n1. Pt will demonstrate B LE strength of ≥4/5 to independently and safely perform all ADLs.\n2. Pt will complete ≥14 repetitions on the 30-second chair sit-to-stand test to reduce fall risk.\n3. Pt will tolerate ≥30 minutes of activity to safely resume household tasks without limitation.\n4. Pt will demonstrate independence with HEP, using proper body mechanics and strength to support safe return to ADLs without difficulty.",
				"frequency":        "1wk1, 2wk12",
				"intervention":     "Manual Therapy (STM/IASTM/Joint Mob), Therapeutic Exercise, Therapeutic Activities, Neuromuscular Re-education, Gait Training, Balance Training, Pain Management Training, Modalities ice/heat 10-15min, E-Stim, Ultrasound, fall/injury prevention training, safety education/training, HEP education/training.",
				"procedures":       "97161 Low Complexity\n97162 Moderate Complexity\n97163 High Complexity\n97140 Manual Therapy\n97110 Therapeutic Exercise\n97530 Therapeutic Activity\n97112 Neuromuscular Re-ed\n97116 Gait Training",
			},
		},
		{
			Name:      "OT Eval Template",
			Namespace: NamespaceOT,
			Text: `Medical Diagnosis:
Medical History/HNP:
Subjective: Pt reports upper extremity pain and is limiting ADLs. Pt would like to improve function and return to PLOF. Pt agrees to OT evaluation.
Pain:
Area/Location of Injury: R shoulder
Onset/Exacerbation Date: 3 weeks ago
Condition of Injury: Acute on chronic
Mechanism of Injury: Lifting
Pain Rating (P/B/W): 4/10, 1/10, 7/10
Pain Frequency: Intermittent
Description: Sharp, throbbing
Aggravating Factor: Overhead activity, reaching
Relieved By: Rest, ice
Interferes With: Grooming, dressing, bathing

Current Medication(s): See medication list

Diagnostic Test(s): MRI right shoulder

DME/Assistive Device: None

PLOF: Independent

Posture: Forward head, rounded shoulders

ROM: R shoulder flexion 100°, abduction 80°

Muscle Strength Test: R shoulder 3+/5

Palpation: TTP R supraspinatus

Functional Test(s): Unable to reach overhead

Special Test(s): (+) Impingement

Current Functional Mobility Impairment(s): Reaching, overhead activity

Goals:
Short-Term Goals (1–12 visits):
1. Pt will decrease pain to ≤2/10 during ADLs.
2. Pt will improve R shoulder ROM to 140° flexion.
3. Pt will improve strength to 4/5.
4. Pt will perform ADLs independently.

Long-Term Goals (13–25 visits):
1. Pt will maintain pain ≤1/10 with all activity.
2. Pt will achieve full ROM and strength in R shoulder.
3. Pt will return to all prior ADLs independently.
4. Pt will independently complete HEP.

Frequency/Duration: 2x/wk x 6wks

Intervention: Manual Therapy, TherEx, HEP training, ADL retraining

Treatment Procedures:
97165 OT Eval
97110 Ther Ex
97530 Ther Activity
97535 Self-care Mgmt
`,
		},
	}
}
