package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ClockTool reports the current date and time. Cheap and deterministic
// enough to serve as the default demo tool.
type ClockTool struct {
	now func() time.Time
}

// NewClockTool creates a ClockTool using the wall clock.
func NewClockTool() *ClockTool {
	return &ClockTool{now: time.Now}
}

func (t *ClockTool) Name() string        { return "clock" }
func (t *ClockTool) Description() string { return "Get the current date and time." }

func (t *ClockTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"timezone": {
				"type": "string",
				"description": "IANA timezone name, e.g. Europe/Oslo. Defaults to local time."
			}
		}
	}`)
}

func (t *ClockTool) Execute(_ context.Context, params map[string]any) (string, error) {
	now := t.now()
	if tz, ok := params["timezone"].(string); ok && tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Sprintf("Error: unknown timezone %q", tz), nil
		}
		now = now.In(loc)
	}
	return now.Format(time.RFC1123), nil
}
