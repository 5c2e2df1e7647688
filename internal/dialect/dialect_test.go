package dialect

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/parlance-ai/parlance/internal/tools"
)

// stubTool is a minimal in-memory tool for parser tests.
type stubTool struct {
	name   string
	desc   string
	params json.RawMessage
	result string
	err    error

	lastParams map[string]any
}

func (t *stubTool) Name() string                { return t.name }
func (t *stubTool) Description() string         { return t.desc }
func (t *stubTool) Parameters() json.RawMessage { return t.params }

func (t *stubTool) Execute(_ context.Context, params map[string]any) (string, error) {
	t.lastParams = params
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

func newWeatherTool() *stubTool {
	return &stubTool{
		name:   "get_weather",
		desc:   "Get the current weather for a city.",
		params: json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}},"required":["city"]}`),
		result: "22C",
	}
}

func registryWith(ts ...*stubTool) *tools.Registry {
	b := tools.NewRegistryBuilder()
	for _, t := range ts {
		b.WithTool(t)
	}
	return b.Build()
}

func emptyRegistry() *tools.Registry {
	return tools.NewRegistryBuilder().Build()
}

var errBoom = errors.New("backend unavailable")
