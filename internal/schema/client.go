package schema

import "context"

// ChatClient is the interface to the model-serving backend. It sends the
// full history and returns the assistant's raw text, which is then handed to
// a dialect parser.
type ChatClient interface {
	Chat(ctx context.Context, model string, history Messages) (string, error)
}
