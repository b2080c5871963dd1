package llmprovider

import (
	"fmt"
	"sort"

	"quickcal/config"
	"quickcal/pkg/gemini"
)

// InitializeProviders creates Provider instances from config.LLMConfig,
// sorted by priority (ascending) with disabled providers filtered out.
// Providers that fail to initialize are skipped instead of failing the
// entire service.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			fmt.Printf("Warning: failed to initialize provider %s (priority %d): %v\n", p.Name, p.Priority, err)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized")
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}

	switch cfg.Name {
	case "gemini":
		client := gemini.NewClient(cfg.APIKey)
		client.SetModel(cfg.Model)
		if cfg.BaseURL != "" {
			client.SetAPIURL(cfg.BaseURL)
		}
		return NewGeminiAdapter(client), nil

	case "openai":
		if cfg.Model == "" {
			return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
		}
		return NewOpenAIAdapter(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}
