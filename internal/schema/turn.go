package schema

import (
	"encoding/json"
	"time"
)

// TurnResponse is the single unit produced by every dialect parse, on both
// the success and the failure path. Ok reports the outcome; Message.Content
// carries either the tool result or model-readable feedback for the next
// turn. Failure is never fatal — the conversation loop always receives a
// message it can act on.
type TurnResponse struct {
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
	Message   Message         `json:"message"`
	Done      bool            `json:"done"`
	Ok        bool            `json:"-"`
	Final     json.RawMessage `json:"final_data,omitempty"`
}
