package llm

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"

	"github.com/promptrefiner/promptrefiner/internal/config"
)

const (
	defaultTemperature = 0.4
	defaultTopP        = 0.9
)

// Gemini client implementation
type Gemini struct {
	client *genai.Client
	cfg    *config.LLMConfig
}

func NewGemini(ctx context.Context, cfg *config.LLMConfig) (*Gemini, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		cfg:    cfg,
	}, nil
}

func (g *Gemini) Complete(ctx context.Context, req Request, opts ...Option) (*Response, error) {
	options := &Options{
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	}
	for _, opt := range opts {
		opt(options)
	}

	model := g.cfg.FastModel
	if options.ThinkingMode {
		model = g.cfg.ThinkingModel
	}

	// Few-shot exemplars precede the assembled user turn as alternating
	// user/model turns.
	contents := make([]*genai.Content, 0, len(req.Exemplars)*2+1)
	for _, ex := range req.Exemplars {
		contents = append(contents,
			&genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: ex.User}}},
			&genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: ex.Assistant}}},
		)
	}
	contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.User}}})

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		Temperature:       genai.Ptr(float32(options.Temperature)),
		TopP:              genai.Ptr(float32(options.TopP)),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned an empty candidate list")
	}

	response := &Response{
		Content: resp.Candidates[0].Content.Parts[0].Text,
	}
	if resp.UsageMetadata != nil {
		response.Usage = Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return response, nil
}
