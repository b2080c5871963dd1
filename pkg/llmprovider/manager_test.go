package llmprovider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quickcal/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type stubProvider struct {
	name  string
	resp  llmprovider.Response
	err   error
	calls int
}

func (s *stubProvider) Complete(ctx context.Context, req llmprovider.Request) (llmprovider.Response, error) {
	s.calls++
	return s.resp, s.err
}

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Model() string { return s.name + "-model" }

// slowProvider blocks until the context is done.
type slowProvider struct{}

func (s *slowProvider) Complete(ctx context.Context, req llmprovider.Request) (llmprovider.Response, error) {
	<-ctx.Done()
	return llmprovider.Response{}, ctx.Err()
}

func (s *slowProvider) Name() string  { return "slow" }
func (s *slowProvider) Model() string { return "slow-model" }

func TestManager_Complete(t *testing.T) {
	t.Run("no providers", func(t *testing.T) {
		m := llmprovider.NewManager(nil, false, 0, &mockLogger{})
		_, err := m.Complete(context.Background(), llmprovider.Request{})
		if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})

	t.Run("first provider wins", func(t *testing.T) {
		first := &stubProvider{name: "gemini", resp: llmprovider.Response{Text: "a", ProviderName: "gemini"}}
		second := &stubProvider{name: "openai", resp: llmprovider.Response{Text: "b"}}
		m := llmprovider.NewManager([]llmprovider.Provider{first, second}, true, 0, &mockLogger{})

		resp, err := m.Complete(context.Background(), llmprovider.Request{User: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "a" {
			t.Errorf("unexpected response: %q", resp.Text)
		}
		if second.calls != 0 {
			t.Errorf("second provider should not be called, got %d calls", second.calls)
		}
	})

	t.Run("fallback on failure", func(t *testing.T) {
		first := &stubProvider{name: "gemini", err: errors.New("boom")}
		second := &stubProvider{name: "openai", resp: llmprovider.Response{Text: "b"}}
		m := llmprovider.NewManager([]llmprovider.Provider{first, second}, true, 0, &mockLogger{})

		resp, err := m.Complete(context.Background(), llmprovider.Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "b" {
			t.Errorf("unexpected response: %q", resp.Text)
		}
	})

	t.Run("fallback disabled", func(t *testing.T) {
		boom := errors.New("boom")
		first := &stubProvider{name: "gemini", err: boom}
		second := &stubProvider{name: "openai", resp: llmprovider.Response{Text: "b"}}
		m := llmprovider.NewManager([]llmprovider.Provider{first, second}, false, 0, &mockLogger{})

		_, err := m.Complete(context.Background(), llmprovider.Request{})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped provider error, got %v", err)
		}
		if second.calls != 0 {
			t.Errorf("fallback disabled, second provider should not be called")
		}
	})

	t.Run("no fallback on deadline", func(t *testing.T) {
		first := &stubProvider{name: "gemini", err: context.DeadlineExceeded}
		second := &stubProvider{name: "openai", resp: llmprovider.Response{Text: "b"}}
		m := llmprovider.NewManager([]llmprovider.Provider{first, second}, true, 0, &mockLogger{})

		_, err := m.Complete(context.Background(), llmprovider.Request{})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error, got %v", err)
		}
		if second.calls != 0 {
			t.Errorf("deadline should not trigger fallback")
		}
	})

	t.Run("manager timeout", func(t *testing.T) {
		m := llmprovider.NewManager([]llmprovider.Provider{&slowProvider{}}, false, 10*time.Millisecond, &mockLogger{})

		_, err := m.Complete(context.Background(), llmprovider.Request{})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		first := &stubProvider{name: "gemini", resp: llmprovider.Response{Text: "a"}}
		m := llmprovider.NewManager([]llmprovider.Provider{first}, false, 0, &mockLogger{})

		_, err := m.Complete(ctx, llmprovider.Request{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if first.calls != 0 {
			t.Errorf("provider should not be called on cancelled context")
		}
	})
}
