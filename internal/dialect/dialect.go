// Package dialect normalises the incompatible textual conventions that
// different model families use to express function calls. Each dialect knows
// how to advertise the tool registry in its system prompt, how to extract a
// {name, arguments} intent from raw model output, and how to phrase failure
// feedback so the model can correct itself on the next turn.
package dialect

import (
	"context"
	"fmt"
	"time"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// Parser is the contract every model dialect implements. Parsers hold no
// conversation state; all inputs are passed per call and the registry is
// read-only for the duration of a turn.
type Parser interface {
	// Name is the dialect identifier used in config and CLI selection.
	Name() string
	// Parse extracts one function-call intent from raw model output, invokes
	// the matching tool, and returns the outcome. Every failure comes back as
	// a TurnResponse carrying model-readable feedback, never as a fault.
	Parse(ctx context.Context, raw, model string, reg *tools.Registry) schema.TurnResponse
	// ContainsCall reports whether raw looks like it carries a function call
	// in this dialect. The conversation loop uses it to tell a final
	// plain-text answer apart from a call attempt worth parsing.
	ContainsCall(raw string) bool
	// FormatQuery adjusts the outbound user query. Identity by default.
	FormatQuery(input string) string
	// FormatResponse annotates intermediate agent iterations. Identity by
	// default.
	FormatResponse(response string) string
	// SystemMessage serialises the registry into the dialect's system prompt
	// template. It fails only when the template lacks the {tools}
	// placeholder, which is a configuration defect.
	SystemMessage(reg *tools.Registry) (schema.Message, error)
	// HandleError converts any failure into a feedback TurnResponse. All
	// failure paths inside a dialect route through this single method so
	// error formatting stays consistent.
	HandleError(err error) schema.TurnResponse
}

// base supplies the identity defaults shared by all dialects. Dialects embed
// it and override only what they need.
type base struct{}

func (base) FormatQuery(input string) string       { return input }
func (base) FormatResponse(response string) string { return response }

// signature is the {name, arguments} intent every dialect extracts. It lives
// only for the duration of one parse call.
type signature struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// dispatch looks up sig.Name in the registry and runs the tool. Lookup is
// exact and case-sensitive. notFound is the dialect's unknown-tool wording.
func dispatch(ctx context.Context, sig signature, reg *tools.Registry, notFound string) (string, error) {
	tool := reg.Get(sig.Name)
	if tool == nil {
		return "", &UnknownToolError{Message: notFound}
	}
	out, err := tool.Execute(ctx, sig.Arguments)
	if err != nil {
		return "", &ToolRunError{Name: sig.Name, Err: err}
	}
	return out, nil
}

func successResponse(model, content string) schema.TurnResponse {
	return schema.TurnResponse{
		Model:     model,
		CreatedAt: time.Now().UTC(),
		Message:   schema.NewAssistantMessage(content),
		Done:      true,
		Ok:        true,
	}
}

func errorResponse(content string) schema.TurnResponse {
	return schema.TurnResponse{
		CreatedAt: time.Now().UTC(),
		Message:   schema.NewAssistantMessage(content),
		Done:      true,
	}
}

// New returns the parser for the named dialect.
func New(name string) (Parser, error) {
	switch name {
	case "tagged":
		return NewTagged(), nil
	case "hermes":
		return NewHermes(), nil
	case "fenced":
		return NewFenced(), nil
	case "structured":
		return NewStructured(), nil
	}
	return nil, fmt.Errorf("unknown dialect %q (supported: %v)", name, Names())
}

// Names lists the supported dialect identifiers.
func Names() []string {
	return []string{"tagged", "hermes", "fenced", "structured"}
}
