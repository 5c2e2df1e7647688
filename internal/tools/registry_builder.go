package tools

import "github.com/parlance-ai/parlance/internal/schema"

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	order []string
	tools map[string]schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
// Registering the same name twice replaces the tool but keeps its original
// position in the advertisement order.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	name := tool.Name()
	if _, seen := b.tools[name]; !seen {
		b.order = append(b.order, name)
	}
	b.tools[name] = tool

	return b
}

// Build produces an immutable Registry from the accumulated tools.
func (b *RegistryBuilder) Build() *Registry {
	order := make([]string, len(b.order))
	copy(order, b.order)
	tools := make(map[string]schema.Tool, len(b.tools))
	for name, t := range b.tools {
		tools[name] = t
	}
	return &Registry{order: order, tools: tools}
}
