package dialect

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// Fenced is the dialect for models that answer with a bare {name, arguments}
// JSON object, optionally wrapped in a ```json Markdown fence. Error feedback
// is plain unwrapped text and successful results are returned verbatim.
type Fenced struct {
	base
	template string
}

// NewFenced returns a Fenced parser with the default system template.
func NewFenced() *Fenced {
	return &Fenced{template: fencedSystemTemplate}
}

func (p *Fenced) Name() string { return "fenced" }

// SetTemplate replaces the system template (prompt-pack override).
func (p *Fenced) SetTemplate(t string) { p.template = t }

// stripFences removes the optional code-fence markers and surrounding
// whitespace. Markers are trimmed before the final whitespace trim; the order
// is part of the wire contract.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (p *Fenced) ContainsCall(raw string) bool {
	return strings.HasPrefix(stripFences(raw), "{")
}

func (p *Fenced) Parse(ctx context.Context, raw, model string, reg *tools.Registry) schema.TurnResponse {
	var sig signature
	if err := json.Unmarshal([]byte(stripFences(raw)), &sig); err != nil {
		return p.HandleError(&MalformedIntentError{Err: err})
	}
	result, err := dispatch(ctx, sig, reg, "Tool not found")
	if err != nil {
		return p.HandleError(err)
	}
	return successResponse(model, result)
}

func (p *Fenced) SystemMessage(reg *tools.Registry) (schema.Message, error) {
	return renderSystem(p.template, reg)
}

// HandleError returns the diagnostic as bare text; models speaking this
// dialect consume unwrapped feedback.
func (p *Fenced) HandleError(err error) schema.TurnResponse {
	return errorResponse(err.Error())
}
