// Package schema contains the core contracts shared across parlance packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every shared type.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface every model-callable capability must satisfy.
// The core never constructs tools; it reads their declarations when building
// the system prompt and calls Execute when a parsed call names them.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) describing the
	// arguments this tool accepts.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}
