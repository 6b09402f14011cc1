// Package refiner sequences one request/response cycle: usage gate,
// enrichment, prompt assembly, the LLM call, and response validation.
// Every failure mode maps to a typed status error so the handler layer
// can translate outcomes without string matching.
package refiner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/auth"
	"github.com/promptrefiner/promptrefiner/internal/enrich"
	"github.com/promptrefiner/promptrefiner/internal/jsonutil"
	"github.com/promptrefiner/promptrefiner/internal/llm"
	"github.com/promptrefiner/promptrefiner/internal/prompt"
	"github.com/promptrefiner/promptrefiner/internal/usage"
	"github.com/promptrefiner/promptrefiner/internal/validate"
)

// Sampling is fixed per variant: the thinking variant runs tighter than
// the fast one, and the system prompt generator runs slightly warmer.
const (
	fastTemperature      = 0.4
	fastTopP             = 0.9
	thinkingTemperature  = 0.3
	thinkingTopP         = 0.85
	generatorTemperature = 0.5
	generatorTopP        = 0.9

	minUseCaseChars = 20
)

// StatusError carries the external HTTP status a failure maps to.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func badRequest(format string, args ...any) *StatusError {
	return &StatusError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func upstream(format string, args ...any) *StatusError {
	return &StatusError{Code: http.StatusBadGateway, Message: fmt.Sprintf(format, args...)}
}

func internal(format string, args ...any) *StatusError {
	return &StatusError{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}

type Refiner struct {
	provider llm.Provider
	gate     *usage.Gate
	search   *enrich.WebSearch
	similar  *enrich.Similar
	docs     *enrich.LiveDocs
}

func New(provider llm.Provider, gate *usage.Gate, search *enrich.WebSearch, similar *enrich.Similar, docs *enrich.LiveDocs) *Refiner {
	return &Refiner{
		provider: provider,
		gate:     gate,
		search:   search,
		similar:  similar,
		docs:     docs,
	}
}

func samplingFor(thinking bool) []llm.Option {
	if thinking {
		return []llm.Option{llm.WithThinkingMode(true), llm.WithSampling(thinkingTemperature, thinkingTopP)}
	}
	return []llm.Option{llm.WithSampling(fastTemperature, fastTopP)}
}

// Analyze runs the analysis cycle for one request.
func (r *Refiner) Analyze(ctx context.Context, sess auth.Session, req apimodels.AnalyzeRequest) (*apimodels.AnalysisResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, badRequest("Prompt text is required.")
	}
	if strings.TrimSpace(req.TargetModel) == "" {
		return nil, badRequest("Target model is required so we can tailor the refinement.")
	}

	// Web search is an explicit user feature: entitlement is checked up
	// front and failures surface as a warning on an otherwise successful
	// result.
	var webDocs []apimodels.Document
	var webWarning string
	if req.UseWebSearch {
		if !usage.Entitled(sess.Plan) {
			return nil, &StatusError{
				Code:    http.StatusForbidden,
				Message: "Web search requires a paid plan. Upgrade to enable it.",
			}
		}
		docs, err := r.search.Search(ctx, strings.TrimSpace(req.Prompt)+" "+strings.TrimSpace(req.Context))
		if err != nil {
			slog.Warn("web search enrichment failed", "error", err)
			webWarning = fmt.Sprintf("Web search was unavailable: %v", err)
		} else {
			webDocs = docs
		}
	}

	if err := r.gate.Record(sess.Email, sess.Plan); err != nil {
		var quota *usage.QuotaError
		if errors.As(err, &quota) {
			return nil, &StatusError{Code: http.StatusTooManyRequests, Message: quota.Error()}
		}
		return nil, internal("usage check failed: %v", err)
	}

	// Invisible best-effort enrichments: failure means omission, nothing
	// more.
	combined := strings.TrimSpace(req.Prompt + " " + req.Context)
	similar := r.similar.Query(ctx, strings.TrimSpace(req.Prompt), prompt.ParseModality(req.Modality).String())
	liveDocs := r.docs.Lookup(ctx, combined)

	llmReq := prompt.BuildAnalysis(req, prompt.Enrichment{
		WebResults: webDocs,
		Similar:    similar,
		LiveDocs:   liveDocs,
	})

	resp, err := r.provider.Complete(ctx, llmReq, samplingFor(req.ThinkingMode)...)
	if err != nil {
		return nil, internal("prompt analysis failed: %v", err)
	}

	var result apimodels.AnalysisResult
	if err := jsonutil.Unmarshal(resp.Content, &result); err != nil {
		slog.Error("analysis output was not parseable JSON", "error", err)
		return nil, upstream("Failed to interpret the model output. Please try again or adjust your prompt.")
	}

	if err := validate.AnalysisResult(&result); err != nil {
		slog.Error("analysis output failed validation", "error", err)
		return nil, upstream("Invalid analysis response: %v", err)
	}

	result.ExternalContext = webDocs
	result.ExternalContextError = webWarning

	slog.Info("analysis completed",
		"questions", len(result.Questions),
		"web_results", len(webDocs),
		"similar", len(similar),
		"live_docs", len(liveDocs),
		"tokens", resp.Usage.TotalTokens,
	)
	return &result, nil
}

// Refine runs the synthesis cycle: it additionally requires a blueprint
// with the expected version and at least one clarifying question before
// any LLM call is made.
func (r *Refiner) Refine(ctx context.Context, sess auth.Session, req apimodels.RefineRequest) (*apimodels.RefinementResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, badRequest("Prompt text is required.")
	}
	if strings.TrimSpace(req.TargetModel) == "" {
		return nil, badRequest("Target model is required.")
	}
	if len(req.Questions) == 0 {
		return nil, badRequest("Questions from the analysis phase are required to refine the prompt.")
	}
	if req.Blueprint == nil {
		return nil, badRequest("Blueprint from analysis is required before refining the prompt.")
	}
	if req.Blueprint.Version != prompt.Version {
		return nil, badRequest("Blueprint version mismatch. Expected %s, received %s.", prompt.Version, req.Blueprint.Version)
	}

	if err := r.gate.Record(sess.Email, sess.Plan); err != nil {
		var quota *usage.QuotaError
		if errors.As(err, &quota) {
			return nil, &StatusError{Code: http.StatusTooManyRequests, Message: quota.Error()}
		}
		return nil, internal("usage check failed: %v", err)
	}

	llmReq, err := prompt.BuildRefinement(req)
	if err != nil {
		return nil, internal("assembling refinement prompt: %v", err)
	}

	resp, err := r.provider.Complete(ctx, llmReq, samplingFor(req.ThinkingMode)...)
	if err != nil {
		return nil, internal("prompt refinement failed: %v", err)
	}

	var result apimodels.RefinementResult
	if err := jsonutil.Unmarshal(resp.Content, &result); err != nil {
		slog.Error("refinement output was not parseable JSON", "error", err)
		return nil, upstream("Failed to parse model response into JSON.")
	}

	if err := validate.RefinementResult(&result); err != nil {
		slog.Error("refinement output failed validation", "error", err)
		return nil, upstream("Invalid refinement response: %v", err)
	}

	slog.Info("refinement completed",
		"variation", req.VariationHint != "",
		"tokens", resp.Usage.TotalTokens,
	)
	return &result, nil
}

// GenerateSystemPrompt builds a complete system prompt from a use-case
// description.
func (r *Refiner) GenerateSystemPrompt(ctx context.Context, sess auth.Session, req apimodels.GenerateSystemPromptRequest) (*apimodels.SystemPromptResult, error) {
	targetModel := strings.TrimSpace(req.TargetModel)
	useCase := strings.TrimSpace(req.UseCase)

	if targetModel == "" {
		return nil, badRequest("Target model is required.")
	}
	if useCase == "" {
		return nil, badRequest("Use case description is required.")
	}
	if len(useCase) < minUseCaseChars {
		return nil, badRequest("Please provide a more detailed use case description (at least %d characters).", minUseCaseChars)
	}

	if err := r.gate.Record(sess.Email, sess.Plan); err != nil {
		var quota *usage.QuotaError
		if errors.As(err, &quota) {
			return nil, &StatusError{Code: http.StatusTooManyRequests, Message: quota.Error()}
		}
		return nil, internal("usage check failed: %v", err)
	}

	llmReq := prompt.BuildSystemPrompt(req)

	opts := []llm.Option{llm.WithSampling(generatorTemperature, generatorTopP)}
	if req.ThinkingMode {
		opts = append(opts, llm.WithThinkingMode(true))
	}
	resp, err := r.provider.Complete(ctx, llmReq, opts...)
	if err != nil {
		return nil, internal("system prompt generation failed: %v", err)
	}

	var result apimodels.SystemPromptResult
	if err := jsonutil.Unmarshal(resp.Content, &result); err != nil {
		slog.Error("generator output was not parseable JSON", "error", err)
		return nil, upstream("Failed to interpret the model output. Please try again or adjust your description.")
	}

	if err := validate.SystemPromptResult(&result); err != nil {
		slog.Error("generator output failed validation", "error", err)
		return nil, upstream("Invalid generation result: %v", err)
	}

	result.Version = prompt.Version
	result.TargetModel = targetModel
	result.UseCase = useCase

	slog.Info("system prompt generated", "tokens", resp.Usage.TotalTokens)
	return &result, nil
}
