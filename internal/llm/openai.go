package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/promptrefiner/promptrefiner/internal/config"
)

// OpenAI client implementation for OpenAI-compatible endpoints.
type OpenAI struct {
	client *openai.Client
	cfg    *config.LLMConfig
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY environment variable")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithBaseURL(cfg.OpenAIEndpoint),
	)

	return &OpenAI{
		client: client,
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, req Request, opts ...Option) (*Response, error) {
	options := &Options{
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Exemplars)*2+2)
	messages = append(messages, openai.SystemMessage(req.System))
	for _, ex := range req.Exemplars {
		messages = append(messages,
			openai.UserMessage(ex.User),
			openai.AssistantMessage(ex.Assistant),
		)
	}
	messages = append(messages, openai.UserMessage(req.User))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.F(o.cfg.OpenAIModel),
		Messages:    openai.F(messages),
		Temperature: openai.F(options.Temperature),
		TopP:        openai.F(options.TopP),
		ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned an empty choice list")
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
