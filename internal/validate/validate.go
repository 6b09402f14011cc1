// Package validate enforces the response contracts on decoded LLM output.
// The model's JSON is untrusted external input: parsing successfully does
// not mean it matches the schema. All checks are fail-fast on the first
// violation and name the failing field.
package validate

import (
	"fmt"
	"strings"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/prompt"
)

// MinQuestions is the minimum number of clarifying questions an analysis
// result must carry.
const MinQuestions = 2

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Blueprint checks a blueprint against the expected schema version and
// field presence rules.
func Blueprint(bp *apimodels.Blueprint) error {
	if bp == nil {
		return fmt.Errorf("blueprint is missing")
	}

	if bp.Version != prompt.Version {
		return fmt.Errorf("unexpected blueprint version: %s", bp.Version)
	}

	stringFields := []struct {
		name  string
		value string
	}{
		{"intent", bp.Intent},
		{"audience", bp.Audience},
		{"tone", bp.Tone},
		{"outputFormat", bp.OutputFormat},
	}
	for _, f := range stringFields {
		if blank(f.value) {
			return fmt.Errorf("blueprint field '%s' is empty", f.name)
		}
	}

	arrayFields := []struct {
		name  string
		value []string
	}{
		{"successCriteria", bp.SuccessCriteria},
		{"requiredInputs", bp.RequiredInputs},
		{"domainContext", bp.DomainContext},
		{"constraints", bp.Constraints},
		{"risks", bp.Risks},
		{"evaluationChecklist", bp.EvaluationChecklist},
	}
	for _, f := range arrayFields {
		if len(f.value) == 0 {
			return fmt.Errorf("blueprint array field '%s' is empty", f.name)
		}
	}

	return nil
}

// AnalysisResult checks an analysis payload, including its nested
// blueprint.
func AnalysisResult(res *apimodels.AnalysisResult) error {
	if res == nil {
		return fmt.Errorf("analysis result is missing")
	}

	if blank(res.Analysis) {
		return fmt.Errorf("missing analysis text")
	}

	if len(res.ImprovementAreas) == 0 {
		return fmt.Errorf("improvement areas array is empty")
	}

	if len(res.Questions) < MinQuestions {
		return fmt.Errorf("insufficient follow-up questions")
	}

	for _, q := range res.Questions {
		if blank(q.ID) || blank(q.Question) || blank(q.Purpose) {
			return fmt.Errorf("each question must include id, question, and purpose fields")
		}
	}

	if blank(res.OverallConfidence) {
		return fmt.Errorf("missing overall confidence message")
	}

	return Blueprint(res.Blueprint)
}

// RefinementResult checks a refinement payload. Assumptions may
// legitimately be empty, but a missing array is rejected.
func RefinementResult(res *apimodels.RefinementResult) error {
	if res == nil {
		return fmt.Errorf("refinement result is missing")
	}

	if blank(res.RefinedPrompt) {
		return fmt.Errorf("missing refined prompt text")
	}

	if blank(res.Guidance) {
		return fmt.Errorf("missing guidance message")
	}

	if len(res.ChangeSummary) == 0 {
		return fmt.Errorf("change summary must include at least one item")
	}

	if res.Assumptions == nil {
		return fmt.Errorf("assumptions must be an array (can be empty)")
	}

	if len(res.EvaluationCriteria) == 0 {
		return fmt.Errorf("evaluation criteria must include at least one item")
	}

	return nil
}

// SystemPromptResult checks a generated system prompt payload.
func SystemPromptResult(res *apimodels.SystemPromptResult) error {
	if res == nil {
		return fmt.Errorf("generation result is missing")
	}

	if blank(res.SystemPrompt) {
		return fmt.Errorf("generated system prompt is empty")
	}

	if len(res.PromptStructure) == 0 {
		return fmt.Errorf("prompt structure list is empty")
	}

	if blank(res.DesignRationale) {
		return fmt.Errorf("design rationale is missing")
	}

	if len(res.CustomizationNotes) == 0 {
		return fmt.Errorf("customization notes are missing")
	}

	if len(res.EvaluationCriteria) == 0 {
		return fmt.Errorf("evaluation criteria are missing")
	}

	return nil
}
