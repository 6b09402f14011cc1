package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/enrich"
	"github.com/promptrefiner/promptrefiner/internal/jsonutil"
	"github.com/promptrefiner/promptrefiner/internal/llm"
)

// modelSentinel is the UI's "no model chosen" value; downstream
// instructions expect the placeholder instead.
const (
	modelSentinel    = "none / not sure yet"
	modelPlaceholder = "Not specified yet"
	noAnswerMarker   = "[no answer supplied]"
)

// NormalizeTargetModel maps the sentinel target-model value to a fixed
// placeholder so the instruction text sees consistent terminology.
func NormalizeTargetModel(targetModel string) string {
	if strings.EqualFold(strings.TrimSpace(targetModel), modelSentinel) {
		return modelPlaceholder
	}
	return strings.TrimSpace(targetModel)
}

// Builder assembles the delimited user-turn text from heterogeneous
// optional inputs. Tag order is fixed: the few-shot exemplars train the
// model on this exact positional layout, so callers must add fields in
// the documented order and never reorder per-request.
type Builder struct {
	parts []string
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Tag emits <name>value</name> even when value is empty. Used for the
// required-but-possibly-blank fields whose emptiness the instruction text
// handles explicitly.
func (b *Builder) Tag(name, value string) *Builder {
	b.parts = append(b.parts, fmt.Sprintf("<%s>%s</%s>", name, value, name))
	return b
}

// OptionalTag emits the tag only when value is non-blank; absent optional
// fields are omitted entirely rather than emitted empty.
func (b *Builder) OptionalTag(name, value string) *Builder {
	if strings.TrimSpace(value) == "" {
		return b
	}
	return b.Tag(name, value)
}

// Block appends prerendered text (already carrying its own tag) verbatim.
func (b *Builder) Block(block string) *Builder {
	if block == "" {
		return b
	}
	b.parts = append(b.parts, block)
	return b
}

func (b *Builder) Render() string {
	return strings.Join(b.parts, "\n")
}

// Enrichment carries the optional retrieved material folded into a call.
type Enrichment struct {
	WebResults []apimodels.Document
	Similar    []enrich.SimilarPrompt
	LiveDocs   []enrich.DocSnippet
}

// BuildAnalysis assembles the full analysis request: instruction block,
// few-shot turns, and the delimited user turn. Field order: target_model,
// original_prompt, extra_context, then similar_prompts, live_documentation
// and external_context blocks when present.
func BuildAnalysis(req apimodels.AnalyzeRequest, enr Enrichment) llm.Request {
	set := instructionsFor(ParseModality(req.Modality))

	user := NewBuilder().
		Tag("target_model", NormalizeTargetModel(req.TargetModel)).
		Tag("original_prompt", strings.TrimSpace(req.Prompt)).
		Tag("extra_context", strings.TrimSpace(req.Context)).
		Block(FormatSimilarPrompts(enr.Similar)).
		Block(FormatLiveDocs(enr.LiveDocs)).
		Block(FormatDocuments(enr.WebResults)).
		Render()

	return llm.Request{
		System:    set.AnalyzerSystem,
		Exemplars: set.AnalyzerShots,
		User:      user,
	}
}

// BuildRefinement assembles the refinement request. Field order:
// target_model, original_prompt, extra_context, tone, output_requirements,
// blueprint, questions, answers, formatted_answers, then
// external_context_raw + external_context and variation_hint when present.
func BuildRefinement(req apimodels.RefineRequest) (llm.Request, error) {
	set := instructionsFor(ParseModality(req.Modality))

	blueprintJSON, err := jsonutil.MarshalNoEscape(req.Blueprint)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encoding blueprint: %w", err)
	}
	questionsJSON, err := jsonutil.MarshalNoEscape(req.Questions)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encoding questions: %w", err)
	}
	answers := req.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	answersJSON, err := jsonutil.MarshalNoEscape(answers)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encoding answers: %w", err)
	}

	b := NewBuilder().
		Tag("target_model", NormalizeTargetModel(req.TargetModel)).
		Tag("original_prompt", strings.TrimSpace(req.Prompt)).
		Tag("extra_context", strings.TrimSpace(req.Context)).
		Tag("tone", strings.TrimSpace(req.Tone)).
		Tag("output_requirements", strings.TrimSpace(req.OutputRequirements)).
		Tag("blueprint", string(blueprintJSON)).
		Tag("questions", string(questionsJSON)).
		Tag("answers", string(answersJSON)).
		Tag("formatted_answers", formatTranscript(req.Questions, answers))

	if len(req.ExternalContext) > 0 {
		rawJSON, err := jsonutil.MarshalNoEscape(req.ExternalContext)
		if err != nil {
			return llm.Request{}, fmt.Errorf("encoding external context: %w", err)
		}
		b.Tag("external_context_raw", string(rawJSON)).
			Block(FormatDocuments(req.ExternalContext))
	}

	b.OptionalTag("variation_hint", req.VariationHint)

	return llm.Request{
		System:    set.RefinerSystem,
		Exemplars: set.RefinerShots,
		User:      b.Render(),
	}, nil
}

// BuildSystemPrompt assembles the system prompt generator request. Field
// order: target_model, use_case, then persona, constraints, tools, and
// additional_context when present.
func BuildSystemPrompt(req apimodels.GenerateSystemPromptRequest) llm.Request {
	user := NewBuilder().
		Tag("target_model", strings.TrimSpace(req.TargetModel)).
		Tag("use_case", strings.TrimSpace(req.UseCase)).
		OptionalTag("persona", strings.TrimSpace(req.Persona)).
		OptionalTag("constraints", strings.TrimSpace(req.Constraints)).
		OptionalTag("tools", strings.TrimSpace(req.Tools)).
		OptionalTag("additional_context", strings.TrimSpace(req.AdditionalContext)).
		Render()

	return llm.Request{
		System:    systemPromptGeneratorPrompt,
		Exemplars: systemPromptFewShots,
		User:      user,
	}
}

// formatTranscript renders the question/answer pairs as a human-readable
// transcript. Unanswered questions carry an explicit marker so the model
// treats them as open assumptions.
func formatTranscript(questions []apimodels.Question, answers map[string]string) string {
	entries := make([]string, 0, len(questions))
	for _, q := range questions {
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			answer = noAnswerMarker
		}
		entries = append(entries, fmt.Sprintf("Question (%s): %s\nAnswer: %s", q.ID, q.Question, answer))
	}
	return strings.Join(entries, "\n\n")
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// FormatDocuments serializes retrieved documents as a numbered list inside
// an external_context tag, with whitespace-normalized snippets.
func FormatDocuments(docs []apimodels.Document) string {
	if len(docs) == 0 {
		return ""
	}
	entries := make([]string, len(docs))
	for i, doc := range docs {
		snippet := strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Snippet, " "))
		entries[i] = fmt.Sprintf("Result %d:\nTitle: %s\nURL: %s\nSummary: %s", i+1, doc.Title, doc.URL, snippet)
	}
	return fmt.Sprintf("<external_context>%s</external_context>", strings.Join(entries, "\n\n"))
}

// FormatSimilarPrompts renders nearest-neighbor prompts as a
// similar_prompts block.
func FormatSimilarPrompts(hits []enrich.SimilarPrompt) string {
	if len(hits) == 0 {
		return ""
	}
	entries := make([]string, len(hits))
	for i, hit := range hits {
		entries[i] = fmt.Sprintf("Example %d (%s, similarity: %.1f%%):\n%s", i+1, hit.Source, hit.Similarity*100, hit.Content)
	}
	return fmt.Sprintf("<similar_prompts>\nThe following are high-quality prompts similar to the user's request:\n\n%s\n</similar_prompts>", strings.Join(entries, "\n\n"))
}

// FormatLiveDocs renders documentation snippets as a live_documentation
// block.
func FormatLiveDocs(snippets []enrich.DocSnippet) string {
	if len(snippets) == 0 {
		return ""
	}
	entries := make([]string, len(snippets))
	for i, snip := range snippets {
		entries[i] = fmt.Sprintf("[Doc %d] %s\n%s", i+1, snip.Source, snip.Content)
	}
	return fmt.Sprintf("<live_documentation>\n%s\n</live_documentation>", strings.Join(entries, "\n\n---\n\n"))
}
