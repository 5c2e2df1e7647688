package dialect

import (
	"context"
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// Hermes is a lenient variant of the tagged dialect: the same tag and
// response conventions, but a malformed call body gets one jsonrepair pass
// before the parser gives up. Useful for fine-tunes that emit single quotes
// or trailing commas inside <tool_call> tags.
type Hermes struct {
	base
	template string
}

// NewHermes returns a Hermes parser with the default system template.
func NewHermes() *Hermes {
	return &Hermes{template: hermesSystemTemplate}
}

func (p *Hermes) Name() string { return "hermes" }

// SetTemplate replaces the system template (prompt-pack override).
func (p *Hermes) SetTemplate(t string) { p.template = t }

func (p *Hermes) ContainsCall(raw string) bool {
	return reTaggedCall.MatchString(raw)
}

func (p *Hermes) Parse(ctx context.Context, raw, model string, reg *tools.Registry) schema.TurnResponse {
	body, ok := extractTaggedBody(raw)
	if !ok {
		return p.HandleError(&TagNotFoundError{Tag: "tool_call"})
	}
	sig, err := decodeSignature(body)
	if err != nil {
		// One repair pass; the original diagnostic is reported if the body
		// still does not parse into an intent.
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return p.HandleError(&MalformedIntentError{Err: err})
		}
		if repairedErr := json.Unmarshal([]byte(repaired), &sig); repairedErr != nil {
			return p.HandleError(&MalformedIntentError{Err: err})
		}
	}
	result, err := dispatch(ctx, sig, reg, "Tool name not found")
	if err != nil {
		return p.HandleError(err)
	}
	return successResponse(model, wrapToolResponse(result))
}

func (p *Hermes) SystemMessage(reg *tools.Registry) (schema.Message, error) {
	return renderSystem(p.template, reg)
}

// HandleError wraps failures in the tagged retry-feedback template; the
// hermes family reads feedback as tool responses.
func (p *Hermes) HandleError(err error) schema.TurnResponse {
	return errorResponse(wrapRetryFeedback(err))
}
