package llmprovider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"quickcal/pkg/gemini"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface.
type GeminiAdapter struct {
	client *gemini.Client
}

// NewGeminiAdapter creates a new Gemini adapter.
func NewGeminiAdapter(client *gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// Complete implements Provider.
func (a *GeminiAdapter) Complete(ctx context.Context, req Request) (Response, error) {
	geminiReq := gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: req.User}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.System != "" {
		geminiReq.SystemInstruction = &gemini.Content{
			Parts: []gemini.Part{{Text: req.System}},
		}
	}
	if req.JSONOutput {
		geminiReq.GenerationConfig.ResponseMIMEType = "application/json"
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return Response{}, &ProviderError{Provider: a.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Response{}, &ProviderError{Provider: a.Name(), Err: ErrEmptyResponse}
	}

	return Response{
		Text:         resp.Candidates[0].Content.Parts[0].Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// OpenAIAdapter adapts the OpenAI chat-completions API (and compatible
// endpoints) to the Provider interface.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates an adapter for an OpenAI-compatible backend.
// baseURL may be empty for the official endpoint.
func NewOpenAIAdapter(apiKey, model, baseURL string) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Complete implements Provider.
func (a *OpenAIAdapter) Complete(ctx context.Context, req Request) (Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	if req.JSONOutput {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Response{}, &ProviderError{Provider: a.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return Response{}, &ProviderError{Provider: a.Name(), Err: ErrEmptyResponse}
	}

	return Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: a.Name(),
		ModelName:    a.model,
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}
