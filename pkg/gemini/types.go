package gemini

// GenerateRequest is the top-level request body for Gemini API.
type GenerateRequest struct {
	SystemInstruction *Content          `json:"system_instruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content wraps a list of Part objects to form a message.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part holds a text segment for a content message.
type Part struct {
	Text string `json:"text,omitempty"`
}

// GenerationConfig holds optional generation settings.
type GenerationConfig struct {
	// Temperature of 0 is meaningful, so no omitempty.
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// GenerateResponse is the top-level response body from Gemini API.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate represents a single response candidate.
type Candidate struct {
	Content Content `json:"content"`
}
