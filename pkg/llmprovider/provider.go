package llmprovider

import "context"

// Provider is a generative text backend. Implementations are safe for
// concurrent use and honor context cancellation on the outbound call.
type Provider interface {
	// Complete sends a single system+user completion request.
	Complete(ctx context.Context, req Request) (Response, error)

	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized completion request.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int

	// JSONOutput asks the backend for a JSON-constrained response format
	// where the backend supports it.
	JSONOutput bool
}

// Response represents a normalized completion response.
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
}
