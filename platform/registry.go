package platform

import (
	"fmt"
	"slices"
	"sync"
)

// Factory creates a fresh Engine instance. Factories take no arguments; any
// configuration an adapter needs is captured when the factory is built.
type Factory func() Engine

// Registry maps language names to engine factories. Registration is
// last-write-wins per name and iteration order is registration order, so
// Languages is stable across calls. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register stores factory under language. Re-registering an existing name
// replaces the previous factory but keeps its original position in the
// iteration order. There is no removal operation; registrations live for the
// process lifetime.
func (r *Registry) Register(language string, factory Factory) {
	if language == "" || factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[language]; !exists {
		r.order = append(r.order, language)
	}
	r.factories[language] = factory
}

// Languages returns a snapshot of the registered language names, in
// registration order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// NewEngine creates an engine for language using its registered factory.
// Fails with ErrUnknownLanguage when no factory is registered under that
// name; it never falls back to a default engine.
func (r *Registry) NewEngine(language string) (Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[language]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return factory(), nil
}

// DefaultRegistry is the process-wide registry that language adapters
// register themselves into at load time.
var DefaultRegistry = NewRegistry()

// RegisterEngine registers factory under language in the default registry.
func RegisterEngine(language string, factory Factory) {
	DefaultRegistry.Register(language, factory)
}

// RegisteredEngines returns the language names known to the default registry,
// in registration order.
func RegisteredEngines() []string {
	return DefaultRegistry.Languages()
}

// NewEngine creates an engine for language from the default registry.
func NewEngine(language string) (Engine, error) {
	return DefaultRegistry.NewEngine(language)
}
