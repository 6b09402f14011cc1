package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/promptrefiner/promptrefiner/internal/config"
)

const (
	// maxDocsQueryWords bounds the lookup query sent to the docs service.
	maxDocsQueryWords = 20
	minQueryWordLen   = 4
	maxDocContentLen  = 1500
)

// libraryPatterns maps mention keywords to library identifiers understood
// by the documentation service.
var libraryPatterns = map[string]string{
	"next.js":          "/vercel/next.js",
	"nextjs":           "/vercel/next.js",
	"react":            "/facebook/react",
	"langchain":        "/langchain-ai/langchain",
	"langgraph":        "/langchain-ai/langgraph",
	"supabase":         "/supabase/supabase",
	"prisma":           "/prisma/prisma",
	"tailwind":         "/tailwindlabs/tailwindcss",
	"typescript":       "/microsoft/typescript",
	"fastapi":          "/tiangolo/fastapi",
	"anthropic":        "/anthropics/anthropic-sdk-python",
	"openai":           "/openai/openai-python",
	"gemini":           "/google/generative-ai-js",
	"runway":           "runway",
	"midjourney":       "midjourney",
	"stable diffusion": "stable-diffusion",
}

// recencyKeywords suggest the prompt needs current information.
var recencyKeywords = []string{
	"latest",
	"current version",
	"up to date",
	"new features",
	"recent",
	"just released",
	"breaking changes",
	"v19", "v18", "v15", "v14",
	"2025",
	"2026",
}

// LiveDocs looks up current library documentation. Like similarity
// retrieval it is best-effort: failures silently yield nothing. Before
// the network call it runs a cheap keyword gate so most requests never
// hit the service at all.
type LiveDocs struct {
	cfg        config.EnrichConfig
	httpClient *http.Client
}

func NewLiveDocs(cfg config.EnrichConfig) *LiveDocs {
	return &LiveDocs{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.DocsTimeout},
	}
}

func (l *LiveDocs) Enabled() bool {
	return l.cfg.DocsBaseURL != ""
}

// DetectLibraries returns the identifiers of known libraries mentioned in
// text, in deterministic order.
func DetectLibraries(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var detected []string
	for pattern, id := range libraryPatterns {
		if strings.Contains(lower, pattern) && !seen[id] {
			seen[id] = true
			detected = append(detected, id)
		}
	}
	sort.Strings(detected)
	return detected
}

// NeedsLiveDocs reports whether the text mentions a known library or
// contains recency keywords that warrant a documentation lookup.
func NeedsLiveDocs(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range recencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return len(DetectLibraries(text)) > 0
}

// buildQuery extracts a focused lookup query: the first meaningful words
// of the prompt up to a fixed budget.
func buildQuery(prompt string) string {
	var words []string
	for _, w := range strings.Fields(prompt) {
		if len(w) < minQueryWordLen {
			continue
		}
		words = append(words, w)
		if len(words) == maxDocsQueryWords {
			break
		}
	}
	return strings.Join(words, " ")
}

type docsQueryResponse struct {
	Results []struct {
		Content   string  `json:"content"`
		Source    string  `json:"source"`
		Relevance float64 `json:"relevance"`
	} `json:"results"`
}

// Lookup fetches documentation snippets relevant to the combined
// prompt+context text, or nil when the gate rejects the text or anything
// fails.
func (l *LiveDocs) Lookup(ctx context.Context, combined string) []DocSnippet {
	if !l.Enabled() || !NeedsLiveDocs(combined) {
		return nil
	}

	libraries := DetectLibraries(combined)
	if len(libraries) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"libraryId": libraries[0],
		"query":     buildQuery(combined),
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.DocsBaseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if l.cfg.DocsAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.cfg.DocsAPIKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		slog.Warn("live docs lookup failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("live docs lookup returned non-success status", "status", resp.StatusCode)
		return nil
	}

	var payload docsQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Warn("live docs response was not valid JSON", "error", err)
		return nil
	}

	snippets := make([]DocSnippet, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Content == "" {
			continue
		}
		content := r.Content
		if len(content) > maxDocContentLen {
			content = content[:maxDocContentLen]
		}
		snippets = append(snippets, DocSnippet{
			Content:   content,
			Source:    r.Source,
			Relevance: r.Relevance,
		})
	}
	return snippets
}
