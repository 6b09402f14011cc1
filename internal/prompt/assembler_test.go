package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/enrich"
)

func analyzeReq() apimodels.AnalyzeRequest {
	return apimodels.AnalyzeRequest{
		Prompt:      "Summarize this report",
		TargetModel: "Anthropic Claude Sonnet",
		Context:     "Quarterly finance report",
	}
}

func refineReq() apimodels.RefineRequest {
	return apimodels.RefineRequest{
		AnalyzeRequest: analyzeReq(),
		Blueprint: &apimodels.Blueprint{
			Version:             Version,
			Intent:              "Summarize a report",
			Audience:            "Executives",
			SuccessCriteria:     []string{"Accurate"},
			RequiredInputs:      []string{"Report text"},
			DomainContext:       []string{"Finance"},
			Constraints:         []string{"Short"},
			Tone:                "Professional",
			Risks:               []string{"Omissions"},
			OutputFormat:        "Bullets",
			EvaluationChecklist: []string{"Numbers match"},
		},
		Questions: []apimodels.Question{
			{ID: "audience", Question: "Who reads it?", Purpose: "Sets depth."},
			{ID: "length", Question: "How long?", Purpose: "Sets structure."},
		},
		Answers: map[string]string{"audience": "The CFO"},
	}
}

func TestBuildAnalysisFieldOrder(t *testing.T) {
	req := analyzeReq()
	out := BuildAnalysis(req, Enrichment{})

	assert.Equal(t, strings.Join([]string{
		"<target_model>Anthropic Claude Sonnet</target_model>",
		"<original_prompt>Summarize this report</original_prompt>",
		"<extra_context>Quarterly finance report</extra_context>",
	}, "\n"), out.User)
}

func TestBuildAnalysisDeterministic(t *testing.T) {
	req := analyzeReq()
	enr := Enrichment{
		WebResults: []apimodels.Document{{Title: "T", URL: "https://x.test", Snippet: "s"}},
		Similar:    []enrich.SimilarPrompt{{Content: "c", Similarity: 0.91, Source: "set-a"}},
		LiveDocs:   []enrich.DocSnippet{{Content: "doc", Source: "/facebook/react"}},
	}

	first := BuildAnalysis(req, enr)
	second := BuildAnalysis(req, enr)
	assert.Equal(t, first.User, second.User)
	assert.Equal(t, first.System, second.System)
}

func TestBuildAnalysisEmptyContextStillTagged(t *testing.T) {
	req := analyzeReq()
	req.Context = ""
	out := BuildAnalysis(req, Enrichment{})
	// extra_context is a required-but-possibly-blank field: emitted empty
	// so the instruction's "not specified" rule applies deterministically.
	assert.Contains(t, out.User, "<extra_context></extra_context>")
}

func TestBuildAnalysisEnrichmentBlockOrder(t *testing.T) {
	out := BuildAnalysis(analyzeReq(), Enrichment{
		WebResults: []apimodels.Document{{Title: "T", URL: "https://x.test", Snippet: "s"}},
		Similar:    []enrich.SimilarPrompt{{Content: "c", Similarity: 0.9, Source: "set"}},
		LiveDocs:   []enrich.DocSnippet{{Content: "doc", Source: "src"}},
	})

	similarIdx := strings.Index(out.User, "<similar_prompts>")
	docsIdx := strings.Index(out.User, "<live_documentation>")
	webIdx := strings.Index(out.User, "<external_context>")
	require.True(t, similarIdx > 0 && docsIdx > 0 && webIdx > 0)
	assert.Less(t, similarIdx, docsIdx)
	assert.Less(t, docsIdx, webIdx)
}

func TestNormalizeTargetModel(t *testing.T) {
	assert.Equal(t, "Not specified yet", NormalizeTargetModel("none / not sure yet"))
	assert.Equal(t, "Not specified yet", NormalizeTargetModel("  None / Not Sure Yet "))
	assert.Equal(t, "openai/gpt-4o", NormalizeTargetModel(" openai/gpt-4o "))
}

func TestBuildRefinementFieldOrder(t *testing.T) {
	out, err := BuildRefinement(refineReq())
	require.NoError(t, err)

	tags := []string{
		"<target_model>",
		"<original_prompt>",
		"<extra_context>",
		"<tone>",
		"<output_requirements>",
		"<blueprint>",
		"<questions>",
		"<answers>",
		"<formatted_answers>",
	}
	last := -1
	for _, tag := range tags {
		idx := strings.Index(out.User, tag)
		require.GreaterOrEqualf(t, idx, 0, "missing tag %s", tag)
		assert.Greaterf(t, idx, last, "tag %s out of order", tag)
		last = idx
	}
}

func TestBuildRefinementTranscript(t *testing.T) {
	out, err := BuildRefinement(refineReq())
	require.NoError(t, err)

	assert.Contains(t, out.User, "Question (audience): Who reads it?\nAnswer: The CFO")
	// Missing answers carry the explicit marker.
	assert.Contains(t, out.User, "Question (length): How long?\nAnswer: [no answer supplied]")
}

func TestBuildRefinementOptionalBlocks(t *testing.T) {
	req := refineReq()
	out, err := BuildRefinement(req)
	require.NoError(t, err)
	// Absent optionals are omitted entirely, not emitted empty.
	assert.NotContains(t, out.User, "<variation_hint>")
	assert.NotContains(t, out.User, "<external_context_raw>")

	req.VariationHint = "try a terser structure"
	req.ExternalContext = []apimodels.Document{{Title: "T", URL: "https://x.test", Snippet: "s"}}
	out, err = BuildRefinement(req)
	require.NoError(t, err)
	assert.Contains(t, out.User, "<variation_hint>try a terser structure</variation_hint>")
	assert.Contains(t, out.User, "<external_context_raw>")
	assert.Contains(t, out.User, "<external_context>")
}

func TestBuildRefinementBlueprintNotHTMLEscaped(t *testing.T) {
	req := refineReq()
	req.Blueprint.Intent = "Compare <v1> & <v2>"
	out, err := BuildRefinement(req)
	require.NoError(t, err)
	assert.Contains(t, out.User, "Compare <v1> & <v2>")
	assert.NotContains(t, out.User, `\u003c`)
}

func TestBuildSystemPromptOptionalTags(t *testing.T) {
	req := apimodels.GenerateSystemPromptRequest{
		TargetModel: "openai/gpt-4o",
		UseCase:     "A support assistant for a developer-tools SaaS.",
	}
	out := BuildSystemPrompt(req)
	assert.Contains(t, out.User, "<target_model>openai/gpt-4o</target_model>")
	assert.Contains(t, out.User, "<use_case>")
	assert.NotContains(t, out.User, "<persona>")
	assert.NotContains(t, out.User, "<tools>")

	req.Persona = "Calm and precise"
	req.Tools = "search, ticketing"
	out = BuildSystemPrompt(req)
	assert.Contains(t, out.User, "<persona>Calm and precise</persona>")
	assert.Contains(t, out.User, "<tools>search, ticketing</tools>")
}

func TestFormatDocumentsNumbersAndNormalizes(t *testing.T) {
	docs := []apimodels.Document{
		{Title: "First", URL: "https://a.test", Snippet: "line one\n\tline   two"},
		{Title: "Second", URL: "https://b.test", Snippet: "plain"},
	}
	out := FormatDocuments(docs)
	assert.Contains(t, out, "Result 1:\nTitle: First\nURL: https://a.test\nSummary: line one line two")
	assert.Contains(t, out, "Result 2:")
	assert.True(t, strings.HasPrefix(out, "<external_context>"))
	assert.True(t, strings.HasSuffix(out, "</external_context>"))
}

func TestFormatDocumentsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatDocuments(nil))
	assert.Equal(t, "", FormatSimilarPrompts(nil))
	assert.Equal(t, "", FormatLiveDocs(nil))
}

func TestFormatSimilarPrompts(t *testing.T) {
	out := FormatSimilarPrompts([]enrich.SimilarPrompt{
		{Content: "Write X", Similarity: 0.873, Source: "dataset-a"},
	})
	assert.Contains(t, out, "Example 1 (dataset-a, similarity: 87.3%):\nWrite X")
}

func TestParseModality(t *testing.T) {
	assert.Equal(t, TextRefiner, ParseModality(""))
	assert.Equal(t, TextRefiner, ParseModality("bogus"))
	assert.Equal(t, ImageRefiner, ParseModality("image"))
	assert.Equal(t, VideoRefiner, ParseModality("video"))
	assert.Equal(t, SystemPromptRefiner, ParseModality("system"))
}

func TestModalitySelectsInstructionBlock(t *testing.T) {
	req := analyzeReq()

	text := BuildAnalysis(req, Enrichment{})
	req.Modality = "image"
	image := BuildAnalysis(req, Enrichment{})
	req.Modality = "video"
	video := BuildAnalysis(req, Enrichment{})

	assert.NotEqual(t, text.System, image.System)
	assert.Contains(t, image.System, "image-generation")
	assert.Contains(t, video.System, "video-generation")
	// User turn layout is modality-independent.
	assert.Equal(t, text.User, image.User)
}

func TestInstructionSetsCoverAllModalities(t *testing.T) {
	for _, m := range []Modality{TextRefiner, ImageRefiner, VideoRefiner, SystemPromptRefiner} {
		set := instructionsFor(m)
		assert.NotEmpty(t, set.AnalyzerSystem, "modality %s", m)
		assert.NotEmpty(t, set.RefinerSystem, "modality %s", m)
		assert.NotEmpty(t, set.AnalyzerShots, "modality %s", m)
		assert.NotEmpty(t, set.RefinerShots, "modality %s", m)
	}
}
