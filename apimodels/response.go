package apimodels

// Blueprint is the versioned structured summary of a prompt's intent and
// constraints. The analysis call produces it; the refinement call consumes
// it unmodified. Version must match the expected prompt version or
// refinement refuses to run against it.
type Blueprint struct {
	Version             string   `json:"version"`
	Intent              string   `json:"intent"`
	Audience            string   `json:"audience"`
	SuccessCriteria     []string `json:"successCriteria"`
	RequiredInputs      []string `json:"requiredInputs"`
	DomainContext       []string `json:"domainContext"`
	Constraints         []string `json:"constraints"`
	Tone                string   `json:"tone"`
	Risks               []string `json:"risks"`
	OutputFormat        string   `json:"outputFormat"`
	EvaluationChecklist []string `json:"evaluationChecklist"`
}

// Question is a clarifying question produced by analysis and answered by
// the user before refinement.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Purpose  string `json:"purpose"`
}

// Document is a single retrieved enrichment result (web search, similar
// prompts, or live documentation). Forwarded opaquely into LLM calls and
// into the final result for display.
type Document struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score,omitempty"`
}

// AnalysisResult is the analyze endpoint's response body.
type AnalysisResult struct {
	Analysis          string     `json:"analysis"`
	ImprovementAreas  []string   `json:"improvementAreas"`
	Questions         []Question `json:"questions"`
	OverallConfidence string     `json:"overallConfidence"`
	Blueprint         *Blueprint `json:"blueprint"`

	// ExternalContext holds web-search documents when the lookup succeeded;
	// ExternalContextError carries the warning when it did not.
	ExternalContext      []Document `json:"externalContext,omitempty"`
	ExternalContextError string     `json:"externalContextError,omitempty"`
}

// RefinementResult is the refine endpoint's response body.
type RefinementResult struct {
	RefinedPrompt      string   `json:"refinedPrompt"`
	Guidance           string   `json:"guidance"`
	ChangeSummary      []string `json:"changeSummary"`
	Assumptions        []string `json:"assumptions"`
	EvaluationCriteria []string `json:"evaluationCriteria"`
}

// SystemPromptResult is the generate-system-prompt endpoint's response body.
type SystemPromptResult struct {
	SystemPrompt       string   `json:"systemPrompt"`
	PromptStructure    []string `json:"promptStructure"`
	DesignRationale    string   `json:"designRationale"`
	CustomizationNotes []string `json:"customizationNotes"`
	EvaluationCriteria []string `json:"evaluationCriteria"`

	// Echoed back for display alongside the generated prompt
	Version     string `json:"version,omitempty"`
	TargetModel string `json:"targetModel,omitempty"`
	UseCase     string `json:"useCase,omitempty"`
}

// ErrorResponse is the uniform JSON error body for every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
