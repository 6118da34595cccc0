package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// UnsupportedProviderError reports a provider identifier with no registered
// capability. It is a configuration-style failure, distinct from a provider
// that exists but fails to construct a model.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %q", e.Provider)
}

// Registry maps provider identifiers to registered capabilities.
// Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register binds a factory to a provider identifier, replacing any previous
// binding. The identifier is matched case-insensitively at lookup.
func (r *Registry) Register(providerID string, factory Factory) {
	key := normalizeProviderID(providerID)
	if key == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// Lookup returns the capability registered for providerID, or an
// *UnsupportedProviderError when none exists.
func (r *Registry) Lookup(providerID string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[normalizeProviderID(providerID)]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: providerID}
	}
	return factory, nil
}

// Names returns the sorted list of registered provider identifiers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeProviderID(providerID string) string {
	return strings.ToLower(strings.TrimSpace(providerID))
}

// RegisterBuiltins registers the built-in provider capabilities on r.
// The openai factory also serves OpenAI-compatible endpoints.
func RegisterBuiltins(r *Registry) {
	openai := NewOpenAIFactory()
	r.Register("openai", openai)
	r.Register("openrouter", openai)
	r.Register("deepseek", openai)
	r.Register("anthropic", NewAnthropicFactory())
	r.Register("ollama", NewOllamaFactory())
	r.Register("mock", NewMockFactory())
}
