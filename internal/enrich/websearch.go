package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/config"
)

const (
	// maxSearchQueryChars bounds the combined query text sent upstream.
	maxSearchQueryChars = 600
	searchResultLimit   = 3
	maxSnippetChars     = 320
)

// WebSearch calls the search service. Unlike the other two adapters its
// failures are surfaced to the user as a warning, because web search is an
// explicitly requested feature. The paid-plan entitlement check lives in
// the handler, not here.
type WebSearch struct {
	cfg        config.EnrichConfig
	httpClient *http.Client
}

func NewWebSearch(cfg config.EnrichConfig) *WebSearch {
	return &WebSearch{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.SearchTimeout},
	}
}

// Enabled reports whether the search service is configured at all.
func (w *WebSearch) Enabled() bool {
	return w.cfg.SearchAPIKey != ""
}

type searchResult struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Snippet     string  `json:"snippet"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	Score       float64 `json:"score"`
}

// The service has shipped both envelope shapes; accept either.
type searchResponse struct {
	Results []searchResult `json:"results"`
	Data    struct {
		Results []searchResult `json:"results"`
	} `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Search runs a web search for query and maps the hits into documents.
// Any failure is returned as an error for the caller to fold into a
// user-visible warning.
func (w *WebSearch) Search(ctx context.Context, query string) ([]apimodels.Document, error) {
	if !w.Enabled() {
		return nil, fmt.Errorf("web search is not configured")
	}

	query = truncate(query, maxSearchQueryChars)

	body, err := json.Marshal(map[string]any{
		"query": query,
		"page":  1,
		"limit": searchResultLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.SearchBaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.cfg.SearchAPIKey)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload searchResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := payload.Error
		if msg == "" {
			msg = payload.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("search failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding search response: %w", decodeErr)
	}

	raw := payload.Results
	if len(raw) == 0 {
		raw = payload.Data.Results
	}

	docs := make([]apimodels.Document, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" && r.Title == "" {
			continue
		}
		doc := apimodels.Document{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Snippet: pickSnippet(r),
			Score:   r.Score,
		}
		if doc.Title == "" {
			doc.Title = fallbackTitle(r.URL)
		}
		if doc.URL == "" || doc.Snippet == "" {
			continue
		}
		docs = append(docs, doc)
	}

	slog.Debug("web search completed", "query_len", len(query), "results", len(docs))
	return docs, nil
}

func pickSnippet(r searchResult) string {
	if s := strings.TrimSpace(r.Snippet); s != "" {
		return s
	}
	if s := strings.TrimSpace(r.Description); s != "" {
		return s
	}
	return truncate(strings.TrimSpace(r.Content), maxSnippetChars)
}

func fallbackTitle(rawURL string) string {
	if rawURL == "" {
		return "Untitled result"
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
