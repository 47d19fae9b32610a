package tools

import "sort"

// Registry maps tool names to their definitions. It is built once at startup
// and read-only afterwards; each operation name resolves to exactly one
// definition.
type Registry struct {
	defs   []ToolDefinition
	byName map[string]int
}

// NewRegistry indexes the given definition groups in order. A duplicate name
// keeps the first definition registered under it.
func NewRegistry(groups ...[]ToolDefinition) *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, group := range groups {
		for _, d := range group {
			if _, exists := r.byName[d.Name]; exists {
				continue
			}
			r.defs = append(r.defs, d)
			r.byName[d.Name] = len(r.defs) - 1
		}
	}
	return r
}

// Definitions returns all registered tools in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	out := make([]ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, false
	}
	return r.defs[i], true
}

// Names returns the sorted tool names, for discovery surfaces.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
