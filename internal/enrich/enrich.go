// Package enrich wraps the three external lookup services that feed
// optional context into LLM calls: web search, similarity retrieval, and
// live documentation. Every adapter degrades to "no enrichment" on
// failure; none of them can abort a request.
package enrich

// SimilarPrompt is one nearest-neighbor hit from the similarity backend.
type SimilarPrompt struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	Source     string  `json:"source"`
}

// DocSnippet is one live-documentation excerpt.
type DocSnippet struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	Relevance float64 `json:"relevance"`
}
