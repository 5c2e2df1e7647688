package dialect

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// Structured is the dialect for OpenAI-compatible backends that return the
// function call as a structured field rather than free text. Raw input is the
// JSON-encoded assistant message carrying a tool_calls array, or a bare
// {name, arguments} object when the backend has already unwrapped it.
//
// Error feedback is bare text and results are returned unwrapped; wrapping is
// a per-dialect choice, and this dialect's models consume plain feedback.
type Structured struct {
	base
	template string
}

// NewStructured returns a Structured parser with the default system template.
func NewStructured() *Structured {
	return &Structured{template: structuredSystemTemplate}
}

func (p *Structured) Name() string { return "structured" }

// SetTemplate replaces the system template (prompt-pack override).
func (p *Structured) SetTemplate(t string) { p.template = t }

// wireMessage is the OpenAI-style assistant message shape. Arguments arrive
// either as a JSON object or as a JSON-encoded string, depending on backend.
type wireMessage struct {
	ToolCalls []struct {
		Function struct {
			Name      string          `json:"name"`
			Arguments json.RawMessage `json:"arguments"`
		} `json:"function"`
	} `json:"tool_calls"`
}

func (p *Structured) ContainsCall(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return strings.Contains(trimmed, `"tool_calls"`) || strings.Contains(trimmed, `"name"`)
}

// extract pulls the first function call out of raw. It tries the native
// tool_calls field first and falls back to a bare signature object.
func (p *Structured) extract(raw string) (signature, error) {
	trimmed := strings.TrimSpace(raw)

	var wire wireMessage
	if err := json.Unmarshal([]byte(trimmed), &wire); err == nil && len(wire.ToolCalls) > 0 {
		fn := wire.ToolCalls[0].Function
		sig := signature{Name: fn.Name}
		if len(fn.Arguments) > 0 {
			if err := json.Unmarshal(fn.Arguments, &sig.Arguments); err != nil {
				var encoded string
				if strErr := json.Unmarshal(fn.Arguments, &encoded); strErr != nil {
					return signature{}, &MalformedIntentError{Err: err}
				}
				if err := json.Unmarshal([]byte(encoded), &sig.Arguments); err != nil {
					return signature{}, &MalformedIntentError{Err: err}
				}
			}
		}
		return sig, nil
	}

	var sig signature
	if err := json.Unmarshal([]byte(trimmed), &sig); err != nil {
		return signature{}, &MalformedIntentError{Err: err}
	}
	return sig, nil
}

func (p *Structured) Parse(ctx context.Context, raw, model string, reg *tools.Registry) schema.TurnResponse {
	sig, err := p.extract(raw)
	if err != nil {
		return p.HandleError(err)
	}
	if sig.Name == "" {
		return p.HandleError(&NoCallError{})
	}
	result, err := dispatch(ctx, sig, reg, "Tool not found")
	if err != nil {
		return p.HandleError(err)
	}
	return successResponse(model, result)
}

func (p *Structured) SystemMessage(reg *tools.Registry) (schema.Message, error) {
	return renderSystem(p.template, reg)
}

func (p *Structured) HandleError(err error) schema.TurnResponse {
	return errorResponse(err.Error())
}
