package dialect

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// reTaggedCall matches the first <tool_call> region, non-greedy, with a body
// that may span multiple lines.
var reTaggedCall = regexp.MustCompile(`(?s)<tool_call>(.*?)</tool_call>`)

// Tagged is the dialect for models that wrap function calls in
// <tool_call></tool_call> tags and expect results back inside
// <tool_response></tool_response> tags. Error feedback is wrapped the same
// way so the model reads it as a tool outcome.
type Tagged struct {
	base
	template string
}

// NewTagged returns a Tagged parser with the default system template.
func NewTagged() *Tagged {
	return &Tagged{template: taggedSystemTemplate}
}

func (p *Tagged) Name() string { return "tagged" }

// SetTemplate replaces the system template (prompt-pack override).
func (p *Tagged) SetTemplate(t string) { p.template = t }

// extractTaggedBody returns the body of the first tagged region with line
// breaks removed.
func extractTaggedBody(content string) (string, bool) {
	m := reTaggedCall.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], "\n", ""), true
}

// unescapeBraces collapses one level of doubled curly braces.
func unescapeBraces(body string) string {
	body = strings.ReplaceAll(body, "{{", "{")
	return strings.ReplaceAll(body, "}}", "}")
}

// decodeSignature parses body into an intent. Models speaking this dialect
// habitually double curly braces when echoing JSON inside tagged text, so a
// failed strict parse gets one retry with the doubling collapsed. Well-formed
// bodies are never rewritten: an arguments object that legitimately closes
// with }} must keep both braces.
func decodeSignature(body string) (signature, error) {
	var sig signature
	err := json.Unmarshal([]byte(body), &sig)
	if err == nil {
		return sig, nil
	}
	var retry signature
	if retryErr := json.Unmarshal([]byte(unescapeBraces(body)), &retry); retryErr == nil {
		return retry, nil
	}
	return signature{}, err
}

func (p *Tagged) ContainsCall(raw string) bool {
	return reTaggedCall.MatchString(raw)
}

func (p *Tagged) Parse(ctx context.Context, raw, model string, reg *tools.Registry) schema.TurnResponse {
	body, ok := extractTaggedBody(raw)
	if !ok {
		return p.HandleError(&TagNotFoundError{Tag: "tool_call"})
	}
	sig, err := decodeSignature(body)
	if err != nil {
		return p.HandleError(&MalformedIntentError{Err: err})
	}
	result, err := dispatch(ctx, sig, reg, "Tool name not found")
	if err != nil {
		return p.HandleError(err)
	}
	return successResponse(model, wrapToolResponse(result))
}

// FormatQuery marks the first turn so the model does not look for tool
// results that do not exist yet.
func (p *Tagged) FormatQuery(input string) string {
	return fmt.Sprintf("%s\nThis is the first turn and you don't have <tool_results> to analyze yet", input)
}

func (p *Tagged) FormatResponse(response string) string {
	return fmt.Sprintf("Agent iteration to assist with user query: %s", response)
}

func (p *Tagged) SystemMessage(reg *tools.Registry) (schema.Message, error) {
	return renderSystem(p.template, reg)
}

// HandleError wraps every failure in the dialect's retry-feedback template.
func (p *Tagged) HandleError(err error) schema.TurnResponse {
	return errorResponse(wrapRetryFeedback(err))
}

// wrapToolResponse wraps a successful tool result in the fixed response tags.
func wrapToolResponse(result string) string {
	return fmt.Sprintf("<tool_response>\n%s\n</tool_response>\n", result)
}

// wrapRetryFeedback formats a failure as tagged feedback inviting the model
// to retry with corrected syntax. The underlying diagnostic is included
// verbatim.
func wrapRetryFeedback(err error) string {
	return fmt.Sprintf("<tool_response>\nThere was an error parsing function calls\n Here's the error stack trace: %s\nPlease call the function again with correct syntax</tool_response>", err)
}
