package llm

import "context"

// Provider is a text-completion service with a strict-JSON response
// contract. Implementations always request JSON output mode.
type Provider interface {
	// Complete sends a system instruction, ordered few-shot exemplar turns,
	// and a final user turn, and returns the raw response text.
	Complete(ctx context.Context, req Request, opts ...Option) (*Response, error)
}

// Exemplar is one few-shot pair: a sample user turn and the assistant
// output the model should imitate.
type Exemplar struct {
	User      string
	Assistant string
}

// Request is the full multi-part prompt for one completion call.
type Request struct {
	System    string
	Exemplars []Exemplar
	User      string
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	// ThinkingMode selects the deeper model variant where the provider
	// distinguishes one (Gemini fast vs. pro).
	ThinkingMode bool
	Temperature  float64
	TopP         float64
}

// WithThinkingMode switches to the deeper model variant.
func WithThinkingMode(on bool) Option {
	return func(o *Options) { o.ThinkingMode = on }
}

// WithSampling overrides the default generation parameters.
func WithSampling(temperature, topP float64) Option {
	return func(o *Options) {
		o.Temperature = temperature
		o.TopP = topP
	}
}

type Response struct {
	Content string
	Usage   Usage
}
