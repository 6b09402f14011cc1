package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/auth"
	"github.com/promptrefiner/promptrefiner/internal/config"
	"github.com/promptrefiner/promptrefiner/internal/enrich"
	"github.com/promptrefiner/promptrefiner/internal/llm"
	"github.com/promptrefiner/promptrefiner/internal/prompt"
	"github.com/promptrefiner/promptrefiner/internal/refiner"
	"github.com/promptrefiner/promptrefiner/internal/usage"
)

type stubProvider struct {
	content string
}

func (s *stubProvider) Complete(ctx context.Context, req llm.Request, opts ...llm.Option) (*llm.Response, error) {
	return &llm.Response{Content: s.content}, nil
}

// newTestStack wires the full HTTP stack with a canned model response and an
// in-process userinfo endpoint that accepts "free-token" and "pro-token".
func newTestStack(t *testing.T, modelOutput string) (http.Handler, func()) {
	t.Helper()

	userinfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer free-token":
			fmt.Fprint(w, `{"email": "free@example.com", "plan": "FREE"}`)
		case "Bearer pro-token":
			fmt.Fprint(w, `{"email": "pro@example.com", "plan": "PRO"}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))

	verifier, err := auth.NewVerifier(config.AuthConfig{
		UserinfoEndpoint: userinfo.URL,
		Timeout:          5 * time.Second,
		SessionCacheSize: 8,
		SessionTTL:       time.Minute,
	})
	require.NoError(t, err)

	similar, err := enrich.NewSimilar(config.EnrichConfig{})
	require.NoError(t, err)

	ref := refiner.New(
		&stubProvider{content: modelOutput},
		usage.NewGate(usage.NewMemoryStore()),
		enrich.NewWebSearch(config.EnrichConfig{}),
		similar,
		enrich.NewLiveDocs(config.EnrichConfig{}),
	)

	cfg := config.Config{Server: config.ServerConfig{
		Port:         "0",
		Host:         "127.0.0.1",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}}
	srv := New(cfg, ref, verifier)
	return srv.server.Handler, userinfo.Close
}

func analysisOutput(t *testing.T) string {
	t.Helper()
	res := apimodels.AnalysisResult{
		Analysis:         "Solid goal, thin constraints.",
		ImprovementAreas: []string{"Audience"},
		Questions: []apimodels.Question{
			{ID: "audience", Question: "Who is this for?", Purpose: "Sets depth."},
			{ID: "format", Question: "What format do you want?", Purpose: "Sets structure."},
		},
		OverallConfidence: "Medium readiness.",
		Blueprint: &apimodels.Blueprint{
			Version:             prompt.Version,
			Intent:              "Summarize a report",
			Audience:            "Not specified yet",
			SuccessCriteria:     []string{"Accurate"},
			RequiredInputs:      []string{"The report"},
			DomainContext:       []string{"Reporting"},
			Constraints:         []string{"None stated"},
			Tone:                "Not specified yet",
			Risks:               []string{"Omissions"},
			OutputFormat:        "Not specified yet",
			EvaluationChecklist: []string{"Numbers match"},
		},
	}
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	return string(raw)
}

func postJSON(t *testing.T, handler http.Handler, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apimodels.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAnalyzeEndpoint(t *testing.T) {
	handler, cleanup := newTestStack(t, analysisOutput(t))
	defer cleanup()

	req := apimodels.AnalyzeRequest{Prompt: "Summarize this report", TargetModel: "gpt-4o"}

	t.Run("happy path", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/v1/analyze", "pro-token", req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result apimodels.AnalysisResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.NotNil(t, result.Blueprint)
		assert.Equal(t, prompt.Version, result.Blueprint.Version)
		assert.Len(t, result.Questions, 2)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/v1/analyze", "", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "You must be signed in.", errorBody(t, rec))
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/v1/analyze", "bogus", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing prompt", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/v1/analyze", "pro-token", apimodels.AnalyzeRequest{TargetModel: "gpt-4o"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorBody(t, rec), "Prompt text is required")
	})

	t.Run("malformed body", func(t *testing.T) {
		httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{not json")))
		httpReq.Header.Set("Authorization", "Bearer pro-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httpReq)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorBody(t, rec), "Invalid request")
	})

	t.Run("web search on free plan", func(t *testing.T) {
		gated := req
		gated.UseWebSearch = true
		rec := postJSON(t, handler, "/api/v1/analyze", "free-token", gated)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, errorBody(t, rec), "paid plan")
	})
}

func TestAnalyzeEndpointQuota(t *testing.T) {
	handler, cleanup := newTestStack(t, analysisOutput(t))
	defer cleanup()

	req := apimodels.AnalyzeRequest{Prompt: "Summarize this report", TargetModel: "gpt-4o"}

	for i := 0; i < 5; i++ {
		rec := postJSON(t, handler, "/api/v1/analyze", "free-token", req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should be within the free quota", i+1)
	}

	rec := postJSON(t, handler, "/api/v1/analyze", "free-token", req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, errorBody(t, rec), "Free plan")
}

func TestRefineEndpoint(t *testing.T) {
	refinement := apimodels.RefinementResult{
		RefinedPrompt:      "## Role\nYou are an analyst.",
		Guidance:           "Paste as one message.",
		ChangeSummary:      []string{"Added structure"},
		Assumptions:        []string{},
		EvaluationCriteria: []string{"Follows structure"},
	}
	raw, err := json.Marshal(refinement)
	require.NoError(t, err)

	handler, cleanup := newTestStack(t, string(raw))
	defer cleanup()

	var analysis apimodels.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(analysisOutput(t)), &analysis))

	req := apimodels.RefineRequest{
		AnalyzeRequest: apimodels.AnalyzeRequest{Prompt: "Summarize this report", TargetModel: "gpt-4o"},
		Blueprint:      analysis.Blueprint,
		Questions:      analysis.Questions,
		Answers:        map[string]string{"audience": "The CFO"},
	}

	t.Run("happy path", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/v1/refine", "pro-token", req)
		require.Equal(t, http.StatusOK, rec.Code)

		var result apimodels.RefinementResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, refinement.RefinedPrompt, result.RefinedPrompt)
	})

	t.Run("stale blueprint", func(t *testing.T) {
		stale := req
		staleBlueprint := *analysis.Blueprint
		staleBlueprint.Version = "2024-06-old"
		stale.Blueprint = &staleBlueprint

		rec := postJSON(t, handler, "/api/v1/refine", "pro-token", stale)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorBody(t, rec), "version mismatch")
	})
}

func TestGenerateSystemPromptEndpoint(t *testing.T) {
	generated := apimodels.SystemPromptResult{
		SystemPrompt:       "# Identity\nYou are a support assistant.",
		PromptStructure:    []string{"Identity"},
		DesignRationale:    "Narrow scope first.",
		CustomizationNotes: []string{"Rename the assistant"},
		EvaluationCriteria: []string{"No refund promises"},
	}
	raw, err := json.Marshal(generated)
	require.NoError(t, err)

	handler, cleanup := newTestStack(t, string(raw))
	defer cleanup()

	req := apimodels.GenerateSystemPromptRequest{
		TargetModel: "openai/gpt-4o",
		UseCase:     "A support assistant for a developer-tools SaaS company.",
	}

	rec := postJSON(t, handler, "/api/v1/generate-system-prompt", "pro-token", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result apimodels.SystemPromptResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, generated.SystemPrompt, result.SystemPrompt)
	assert.Equal(t, prompt.Version, result.Version)
	assert.Equal(t, "openai/gpt-4o", result.TargetModel)
}

func TestGarbageModelOutputMapsToBadGateway(t *testing.T) {
	handler, cleanup := newTestStack(t, "not json at all")
	defer cleanup()

	req := apimodels.AnalyzeRequest{Prompt: "Summarize this report", TargetModel: "gpt-4o"}
	rec := postJSON(t, handler, "/api/v1/analyze", "pro-token", req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	handler, cleanup := newTestStack(t, "{}")
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
