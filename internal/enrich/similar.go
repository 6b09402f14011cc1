package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/promptrefiner/promptrefiner/internal/config"
)

const (
	similarTopK      = 5
	similarCacheSize = 256
)

// Similar retrieves prior prompts close to the user's draft from the
// retrieval backend. It is an invisible best-effort enrichment: every
// failure is absorbed and simply yields no results.
type Similar struct {
	cfg        config.EnrichConfig
	httpClient *http.Client
	cache      *lru.Cache[string, []SimilarPrompt]
}

func NewSimilar(cfg config.EnrichConfig) (*Similar, error) {
	cache, err := lru.New[string, []SimilarPrompt](similarCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating similarity cache: %w", err)
	}
	return &Similar{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RAGTimeout},
		cache:      cache,
	}, nil
}

func (s *Similar) Enabled() bool {
	return s.cfg.RAGBaseURL != ""
}

type similarQueryResponse struct {
	Results []struct {
		Content    string            `json:"content"`
		Similarity float64           `json:"similarity"`
		Metadata   map[string]string `json:"metadata"`
	} `json:"results"`
}

// Query returns up to similarTopK similar prompts, or nil on any failure.
func (s *Similar) Query(ctx context.Context, query, modality string) []SimilarPrompt {
	if !s.Enabled() || query == "" {
		return nil
	}

	cacheKey := modality + "::" + query
	if hits, ok := s.cache.Get(cacheKey); ok {
		return hits
	}

	body, err := json.Marshal(map[string]any{
		"query":            query,
		"top_k":            similarTopK,
		"include_metadata": true,
		"modality":         modality,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.RAGBaseURL+"/api/rag/query", bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Warn("similarity query failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("similarity query returned non-success status", "status", resp.StatusCode)
		return nil
	}

	var payload similarQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Warn("similarity response was not valid JSON", "error", err)
		return nil
	}

	hits := make([]SimilarPrompt, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Content == "" {
			continue
		}
		source := r.Metadata["source"]
		if source == "" {
			source = "unknown"
		}
		hits = append(hits, SimilarPrompt{
			Content:    r.Content,
			Similarity: r.Similarity,
			Source:     source,
		})
	}

	s.cache.Add(cacheKey, hits)
	return hits
}
