package dto

type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a candidate response from the Gemini API.
type Candidate struct {
	Content Content `json:"content"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// GenerateReportParam carries everything the prompt embeds verbatim.
type GenerateReportParam struct {
	Ticker  string            `json:"ticker"`
	Quote   Quote             `json:"quote"`
	News    []StockNews       `json:"news,omitempty"`
	History []HistoricalPrice `json:"history,omitempty"`
	Tier    AccessTier        `json:"tier"`
}

type GenerateReportResult struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
}
