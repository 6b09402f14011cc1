package apimodels

// AnalyzeRequest is the payload for the analyze endpoint.
type AnalyzeRequest struct {
	// Prompt is the draft prompt text to analyze
	Prompt string `json:"prompt"`

	// TargetModel is the model the user intends to run the prompt against
	TargetModel string `json:"targetModel"`

	// Context is optional free-form background supplied by the user
	Context string `json:"context,omitempty"`

	// UseWebSearch requests web-search enrichment (paid plans only)
	UseWebSearch bool `json:"useWebSearch,omitempty"`

	// Modality selects the refiner variant: text, image, video, or system
	Modality string `json:"modality,omitempty"`

	// ThinkingMode selects the deeper model variant with tighter sampling
	ThinkingMode bool `json:"thinkingMode,omitempty"`
}

// RefineRequest is the payload for the refine endpoint. It carries the
// analysis outputs back in: the blueprint, the clarifying questions, and
// the user's answers keyed by question id.
type RefineRequest struct {
	AnalyzeRequest

	Blueprint *Blueprint        `json:"blueprint"`
	Questions []Question        `json:"questions"`
	Answers   map[string]string `json:"answers"`

	// Tone overrides the blueprint's tone for the final prompt
	Tone string `json:"tone,omitempty"`

	// OutputRequirements describes the desired output formats
	OutputRequirements string `json:"outputRequirements,omitempty"`

	// ExternalContext carries forward documents retrieved during analysis
	ExternalContext []Document `json:"externalContext,omitempty"`

	// VariationHint asks for a structurally different rewrite on retry
	VariationHint string `json:"variationHint,omitempty"`
}

// GenerateSystemPromptRequest is the payload for the system prompt
// generator endpoint.
type GenerateSystemPromptRequest struct {
	TargetModel       string `json:"targetModel"`
	UseCase           string `json:"useCase"`
	Persona           string `json:"persona,omitempty"`
	Constraints       string `json:"constraints,omitempty"`
	Tools             string `json:"tools,omitempty"`
	AdditionalContext string `json:"additionalContext,omitempty"`
	ThinkingMode      bool   `json:"thinkingMode,omitempty"`
}
