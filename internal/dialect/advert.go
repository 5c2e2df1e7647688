package dialect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// declaration is the dialect-independent advertisement entry for one tool.
// The shape follows the OpenAI function-declaration convention, so tool
// declarations stay identical across dialects even though call extraction
// does not.
type declaration struct {
	Type     string       `json:"type"`
	Function functionDecl `json:"function"`
}

type functionDecl struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Declarations serialises every registered tool, in registration order, into
// the JSON array substituted into system prompt templates.
func Declarations(reg *tools.Registry) ([]byte, error) {
	all := reg.All()
	decls := make([]declaration, 0, len(all))
	for _, t := range all {
		decls = append(decls, declaration{
			Type: "function",
			Function: functionDecl{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return json.Marshal(decls)
}

// ToolsPlaceholder is the single substitution token every system template
// must contain.
const ToolsPlaceholder = "{tools}"

// renderSystem substitutes the serialised declarations into template.
// A template without the placeholder is a configuration defect, not a
// runtime condition, so it fails loudly instead of producing feedback text.
func renderSystem(template string, reg *tools.Registry) (schema.Message, error) {
	if !strings.Contains(template, ToolsPlaceholder) {
		return schema.Message{}, fmt.Errorf("system template is missing the %s placeholder", ToolsPlaceholder)
	}
	decls, err := Declarations(reg)
	if err != nil {
		return schema.Message{}, fmt.Errorf("serialise tool declarations: %w", err)
	}
	return schema.NewSystemMessage(strings.Replace(template, ToolsPlaceholder, string(decls), 1)), nil
}
