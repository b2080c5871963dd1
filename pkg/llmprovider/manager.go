package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgLog "quickcal/pkg/log"
)

// Completer is the subset of Provider the domain layer depends on.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Manager selects among configured providers in priority order. Each provider
// gets a single attempt; when fallback is enabled the next provider is tried
// on failure. There is no retry against the same provider.
type Manager struct {
	providers []Provider
	fallback  bool
	timeout   time.Duration
	logger    pkgLog.Logger
}

// NewManager creates a Manager over providers already sorted by priority.
// timeout bounds a whole Complete call including fallback; zero disables it.
func NewManager(providers []Provider, fallbackEnabled bool, timeout time.Duration, logger pkgLog.Logger) *Manager {
	return &Manager{
		providers: providers,
		fallback:  fallbackEnabled,
		timeout:   timeout,
		logger:    logger,
	}
}

// Complete sends the request to the first available provider.
func (m *Manager) Complete(ctx context.Context, req Request) (Response, error) {
	if len(m.providers) == 0 {
		return Response{}, ErrNoProvidersConfigured
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	var lastErr error
	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		default:
		}

		resp, err := provider.Complete(ctx, req)
		if err == nil {
			m.logger.Debugf(ctx, "completion served by %s (%s)", provider.Name(), provider.Model())
			return resp, nil
		}

		m.logger.Warnf(ctx, "provider %s (%s) failed: %v", provider.Name(), provider.Model(), err)
		lastErr = err

		if !m.fallback {
			break
		}
		// Caller cancellation is not a provider fault; do not fall through.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	return Response{}, fmt.Errorf("completion failed: %w", lastErr)
}
