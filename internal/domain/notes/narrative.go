package notes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
)

// Kind selects which narrative a generation request produces.
type Kind string

const (
	KindDiffDx  Kind = "diffdx"
	KindSummary Kind = "summary"
	KindGoals   Kind = "goals"
	KindDaily   Kind = "daily"
)

// Per-kind completion budgets.
var maxTokens = map[Kind]int{
	KindDiffDx:  200,
	KindSummary: 350,
	KindGoals:   350,
	KindDaily:   250,
}

// ErrNotConfigured is returned when no API key was supplied at startup.
var ErrNotConfigured = errors.New("completion service is not configured")

// Result is the tagged outcome of one generation call. Callers can branch
// on Err; LegacyText flattens both outcomes into the single text channel
// the original interface exposed.
type Result struct {
	Text string
	Err  error
}

// LegacyText returns generated text on success and a human-readable error
// string on failure. Stored or exported as-is, this reproduces the legacy
// behavior of conflating error text with clinical content.
func (r Result) LegacyText() string {
	if r.Err == nil {
		return r.Text
	}
	if errors.Is(r.Err, ErrNotConfigured) {
		return "OpenAI is not configured."
	}
	return "OpenAI error: " + r.Err.Error()
}

// chatCompleter is the narrow slice of the OpenAI client the generator
// needs; *openai.Client satisfies it, tests inject fakes.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ chatCompleter = (*openai.Client)(nil)

// Generator builds narrative prompts from structured note fields and
// submits them to a chat-completion service. It performs no retries: a
// failed call surfaces in the Result and the invocation is over.
type Generator struct {
	client chatCompleter
	model  string
	now    func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClient replaces the completion client (for testing).
func WithClient(c chatCompleter) GeneratorOption {
	return func(g *Generator) { g.client = c }
}

// WithClock replaces the time source used for date substitution.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator. An empty apiKey leaves the generator
// unconfigured: every call returns ErrNotConfigured without touching the
// network.
func NewGenerator(apiKey, model string, opts ...GeneratorOption) *Generator {
	g := &Generator{model: model, now: time.Now}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the prompt for the given kind from f and submits it.
// The returned text is trimmed. Errors never escape as panics; they are
// carried in the Result.
func (g *Generator) Generate(ctx context.Context, kind Kind, f Fields) Result {
	if g.client == nil {
		return Result{Err: ErrNotConfigured}
	}

	prompt, err := g.buildPrompt(kind, f)
	if err != nil {
		return Result{Err: err}
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens[kind],
	})
	if err != nil {
		return Result{Err: err}
	}
	if len(resp.Choices) == 0 {
		return Result{Err: fmt.Errorf("completion returned no choices")}
	}
	return Result{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}
}

// EvalNarratives holds the three generated pieces of an evaluation note.
type EvalNarratives struct {
	DiffDx  Result
	Summary Result
	Goals   Result
}

// GenerateEval produces the differential diagnosis, assessment summary,
// and goals narratives concurrently. Each result carries its own error;
// one failing call does not cancel the others.
func (g *Generator) GenerateEval(ctx context.Context, f Fields) EvalNarratives {
	var out EvalNarratives
	var eg errgroup.Group
	eg.Go(func() error { out.DiffDx = g.Generate(ctx, KindDiffDx, f); return nil })
	eg.Go(func() error { out.Summary = g.Generate(ctx, KindSummary, f); return nil })
	eg.Go(func() error { out.Goals = g.Generate(ctx, KindGoals, f); return nil })
	_ = eg.Wait()
	return out
}

func (g *Generator) buildPrompt(kind Kind, f Fields) (string, error) {
	switch kind {
	case KindDiffDx:
		return diffDxPrompt(f), nil
	case KindSummary:
		return g.summaryPrompt(f), nil
	case KindGoals:
		return goalsPrompt(f), nil
	case KindDaily:
		return dailyPrompt(f), nil
	default:
		return "", fmt.Errorf("unknown narrative kind: %q", kind)
	}
}

func diffDxPrompt(f Fields) string {
	painParts := make([]string, 0, 10)
	for _, p := range []struct{ label, key string }{
		{"Area/Location", "pain_location"},
		{"Onset", "pain_onset"},
		{"Condition", "pain_condition"},
		{"Mechanism", "pain_mechanism"},
		{"Rating", "pain_rating"},
		{"Frequency", "pain_frequency"},
		{"Description", "pain_description"},
		{"Aggravating", "pain_aggravating"},
		{"Relieved", "pain_relieved"},
		{"Interferes", "pain_interferes"},
	} {
		painParts = append(painParts, p.label+": "+f[p.key])
	}

	return "You are a PT clinical assistant. Provide the single best-fit diagnosis:\n\n" +
		"Subjective:\n" + f["subjective"] + "\n\n" +
		"Pain:\n" + strings.Join(painParts, "; ") + "\n\n" +
		"Objective:\nPosture: " + f["posture"] + "\n" +
		"ROM: " + f["rom"] + "\n" +
		"Strength: " + f["strength"] + "\n"
}

func (g *Generator) summaryPrompt(f Fields) string {
	// Fallbacks apply only when the key is absent; a submitted empty
	// value passes through as empty.
	pick := func(key, fallback string) string {
		if v, ok := f[key]; ok {
			return v
		}
		return fallback
	}
	name := pick("name", "Pt Name")
	age := pick("age", "X")
	gender := strings.ToLower(pick("gender", "patient"))
	pmh := pick("history", "no significant history")
	today := pick("currentdate", g.now().Format("01/02/2006"))

	return "Generate a concise, 7-8 sentence Physical Therapy assessment summary for PT documentation. " +
		"Use clinical, professional language and use abbreviations only (e.g., HEP, ADLs, LBP, STM, TherEx, etc.; " +
		"do not spell out the abbreviation and do not write both full term and abbreviation). " +
		"Never use the phrase 'The patient'; instead, use 'Pt' at the start of each relevant sentence. " +
		fmt.Sprintf("Start with: %q. ", fmt.Sprintf("%s, a %s y/o %s with relevant history of %s.", name, age, gender, pmh)) +
		"Include: " +
		fmt.Sprintf("How/when/why pt was seen (PT initial eval on %s for %s), ", today, f["subjective"]) +
		fmt.Sprintf("mechanism of injury if available (%s), ", f["pain_mechanism"]) +
		fmt.Sprintf("main differential dx (%s), ", f["diffdx"]) +
		fmt.Sprintf("current impairments (strength: %s; ROM: %s; balance/mobility: %s), ", f["strength"], f["rom"], f["impairments"]) +
		fmt.Sprintf("functional/activity/participation limitations: %s, ", f["functional"]) +
		"a professional prognosis and that skilled PT will help pt return to PLOF. " +
		"Do not use bulleted or numbered lists—just a single, well-written summary paragraph."
}

func goalsPrompt(f Fields) string {
	// Deterministic rendering of the eval fields appended to the prompt.
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, f[k])
	}

	return "You are a clinical assistant helping a PT write documentation. " +
		"Using ONLY the provided eval info (summary, objective findings, strength, ROM, impairments, and functional limitations), " +
		"generate clinically-appropriate short-term and long-term PT goals. " +
		"Decide the most relevant and individualized goals based on the data, but ALWAYS follow the exact goal format below. " +
		"DO NOT add extra formatting, explanations, or ChatGPT commentary—output should be concise and in bullet list format only. " +
		"Adapt content of each goal based on eval details. Do not repeat or copy the examples unless appropriate. " +
		"\n\n" +
		"FORMAT TO FOLLOW:\n" +
		"Short-Term Goals (1–12 visits):\n" +
		"1. [goal statement]\n" +
		"2. [goal statement]\n" +
		"3. [goal statement]\n" +
		"4. [goal statement]\n" +
		"Long-Term Goals (13–25 visits):\n" +
		"1. [goal statement]\n" +
		"2. [goal statement]\n" +
		"3. [goal statement]\n" +
		"4. [goal statement]\n" +
		"\nOnly generate goals in this structure." +
		"\n\nEval info:\n" +
		b.String()
}

func dailyPrompt(f Fields) string {
	return "You are a physical therapist. " +
		"Write a 6-sentence daily PT note summary in paragraph form. " +
		"Use professional tone, refer to 'patient' (not 'the patient' or 'patient reported'). " +
		"Summarize the following:\n" +
		"Diagnosis: " + f["diagnosis"] + "\n" +
		"Interventions: " + f["interventions"] + "\n" +
		"Tx Tolerance: " + f["tolerance"] + "\n" +
		"Current Progress: " + f["progress"] + "\n" +
		"Next Visit Plan: " + f["plan"] + "\n" +
		"Do not use the phrases 'patient reported' or 'the patient'. " +
		"Do not spell out, use abbreviation only, avoid using both next to each other. " +
		"After summarizes skip a row write a 1-2 sentences for next visit plan of care utilizing something along Focusing on PT POC to improve strength, endurance, mechanics, activity tolerance with manual therapy, ther-ex, ther-act, IASTM. Improve activity tolerance to return to safe ADLs and community participation and ambulation."
}
