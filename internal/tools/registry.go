// Package tools implements the capability registry and the built-in tools.
package tools

import "github.com/parlance-ai/parlance/internal/schema"

// Registry holds the tools available for a conversation. It is built once
// per session via RegistryBuilder and never mutated afterwards, so concurrent
// reads need no locking.
type Registry struct {
	order []string
	tools map[string]schema.Tool
}

// Get returns the tool registered under name, matched by exact case-sensitive
// string equality, or nil when no such tool exists.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// All returns the tools in registration order.
func (r *Registry) All() []schema.Tool {
	out := make([]schema.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }
