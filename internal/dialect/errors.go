package dialect

import "fmt"

// TagNotFoundError reports that the dialect's delimiter region is absent
// from the model output.
type TagNotFoundError struct {
	Tag string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("Error while extracting <%s> tags.", e.Tag)
}

// NoCallError reports that a structured response carries no function call.
type NoCallError struct{}

func (e *NoCallError) Error() string {
	return "no function call found in model response"
}

// MalformedIntentError wraps the structural-parse failure for a call body.
// The underlying diagnostic is surfaced verbatim in feedback text so the
// model can see exactly what was malformed.
type MalformedIntentError struct {
	Err error
}

func (e *MalformedIntentError) Error() string { return e.Err.Error() }
func (e *MalformedIntentError) Unwrap() error { return e.Err }

// UnknownToolError reports a parsed tool name with no registry match.
// Message holds the dialect's exact wording.
type UnknownToolError struct {
	Message string
}

func (e *UnknownToolError) Error() string { return e.Message }

// ToolRunError wraps a failure reported by the tool itself after dispatch.
type ToolRunError struct {
	Name string
	Err  error
}

func (e *ToolRunError) Error() string { return e.Err.Error() }
func (e *ToolRunError) Unwrap() error { return e.Err }
