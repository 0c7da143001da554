// Package openai is a small REST client for the OpenAI Responses API, used
// by the receipt structuring service. It supports structured (JSON schema)
// output and background responses with polling.
package openai

// InputParameters is what SendPromptReturnResponse takes. Some request
// fields (Store, Background) are set internally and not exposed here.
type InputParameters struct {
	OpenAIAPIKey       string       `json:"open_ai_api_key"` // use OPENAI_API_KEY env var or set another one
	Model              string       `json:"model"`
	Instructions       string       `json:"instructions"`
	MaxOutputTokens    *int         `json:"max_output_tokens,omitempty"`
	Input              []InputItem  `json:"input"`
	PreviousResponseID string       `json:"previous_response_id,omitempty"` // chain with server-side memory
	Reasoning          *Reasoning   `json:"reasoning"`
	Temperature        *float64     `json:"temperature,omitempty"` // GPT-5 family accepts only 1.0
	Text               *TextOptions `json:"text,omitempty"`
}

// InputItem is the simplest message shape the Responses API accepts:
// [{"role":"user","content":"..."}]
type InputItem struct {
	Role    InputRole `json:"role"`
	Content any       `json:"content"`
}

type requestPayload struct {
	Model              string       `json:"model"`
	Instructions       string       `json:"instructions"`
	MaxOutputTokens    *int         `json:"max_output_tokens,omitempty"`
	Input              []InputItem  `json:"input"`
	PreviousResponseID string       `json:"previous_response_id,omitempty"`
	Reasoning          *Reasoning   `json:"reasoning"`
	Store              bool         `json:"store,omitempty"`
	Temperature        *float64     `json:"temperature,omitempty"`
	Background         bool         `json:"background,omitempty"` // allows us to poll
	Text               *TextOptions `json:"text,omitempty"`
}

// ----- Response types we parse -----

// responseObject carries only the fields we actually consume.
type responseObject struct {
	ID                 string       `json:"id"`
	Object             string       `json:"object"`
	CreatedAt          int64        `json:"created_at,omitempty"`
	Background         bool         `json:"background,omitempty"`
	Model              string       `json:"model"`
	Status             string       `json:"status"` // "completed", "in_progress", "failed", ...
	Output             []outputItem `json:"output"`
	Usage              *usageBlock  `json:"usage,omitempty"`
	PreviousResponseID string       `json:"previous_response_id,omitempty"`
	Error              any          `json:"error,omitempty"`

	Temperature float64    `json:"temperature,omitempty"`
	Reasoning   *Reasoning `json:"reasoning,omitempty"`
}

type outputItem struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"` // typically "message"
	Role    string        `json:"role,omitempty"`
	Content []contentItem `json:"content,omitempty"`
}

type contentItem struct {
	Type string `json:"type"`           // e.g. "output_text"
	Text string `json:"text,omitempty"` // set when type == "output_text"
}

type usageBlock struct {
	InputTokens         int                  `json:"input_tokens"`
	InputTokensDetails  *inputTokensDetails  `json:"input_tokens_details"`
	OutputTokens        int                  `json:"output_tokens"`
	TotalTokens         int                  `json:"total_tokens"`
	OutputTokensDetails *outputTokensDetails `json:"output_tokens_details,omitempty"`
}

type inputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

type outputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

type Reasoning struct {
	Effort *Effort `json:"effort,omitempty"`
}

// LLMRunMetadata captures how a response was generated. Kept alongside the
// result payload for auditing and cost tracking.
type LLMRunMetadata struct {
	ResponseID      string `json:"response_id"`
	ResponseLogsUrl string `json:"response_logs_url"` // https://platform.openai.com/logs/<ResponseID>
	Model           string `json:"model"`
	ModelSnapshot   string `json:"model_snapshot"` // parsed snapshot date, e.g. "2025-08-07"
	Status          string `json:"status"`
	ReasoningEffort Effort `json:"reasoning_effort"`

	Temperature float64 `json:"temperature"`

	TokensIn        int `json:"tokens_in"`
	TokensCached    int `json:"tokens_cached"`
	TokensOut       int `json:"tokens_out"`
	TokensReasoning int `json:"tokens_reasoning"`
	TokensTotal     int `json:"tokens_total"`

	StartedAt  int64 `json:"started_at"`
	FinishedAt int64 `json:"finished_at"`
	Elapsed    int64 `json:"elapsed"` // milliseconds
}
