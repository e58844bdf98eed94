package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Manager holds named preset filters and compiles ad-hoc expressions
type Manager struct {
	compiler Compiler
	presets  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		presets:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterPresets compiles and registers named filters. Nothing is
// registered if any expression fails to compile.
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))

	for name, expr := range presets {
		filter, err := m.compiler.Compile(expr)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a registered filter by name
func (m *Manager) Preset(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.presets[name]
	m.mu.RUnlock()
	return filter, exists
}

// Presets returns the registered preset names in sorted order
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.presets))
}

// Resolve picks the filter to apply. Priority: expression > preset > match all.
func (m *Manager) Resolve(expression, preset string) (CompiledFilter, error) {
	if strings.TrimSpace(expression) != "" {
		return m.compiler.Compile(expression)
	}

	if preset != "" {
		if filter, ok := m.Preset(preset); ok {
			return filter, nil
		}
		return nil, &UnknownPresetError{Name: preset}
	}

	return MatchAll(), nil
}
