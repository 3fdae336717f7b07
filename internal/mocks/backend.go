package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/lms-api/internal/generation"
)

// MockBackend implements generation.Backend for testing.
type MockBackend struct {
	// BackendName is returned by Name; "mock" when empty.
	BackendName string

	// GenerateFn overrides Generate when set.
	GenerateFn func(ctx context.Context, prompt string) (string, error)

	// Default Generate results
	Response string
	Err      error

	// ReadyErr is returned by Ready.
	ReadyErr error

	mu      sync.Mutex
	prompts []string
}

var _ generation.Backend = (*MockBackend)(nil)

// NewMockBackendWithResponse creates a MockBackend that always returns text.
func NewMockBackendWithResponse(text string) *MockBackend {
	return &MockBackend{Response: text}
}

// NewMockBackendWithError creates a MockBackend whose Generate always fails.
func NewMockBackendWithError(err error) *MockBackend {
	return &MockBackend{Err: err}
}

// NewUnconfiguredMockBackend creates a MockBackend whose Ready reports a
// missing credential.
func NewUnconfiguredMockBackend() *MockBackend {
	return &MockBackend{
		ReadyErr: fmt.Errorf("%w: API key is not configured", generation.ErrInvalidConfig),
	}
}

// Name implements generation.Backend.
func (m *MockBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

// Ready implements generation.Backend.
func (m *MockBackend) Ready() error {
	return m.ReadyErr
}

// Generate implements generation.Backend.
func (m *MockBackend) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt passed to Generate.
func (m *MockBackend) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
