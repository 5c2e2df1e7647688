// Package agent drives the parse-and-dispatch conversation loop.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/parlance-ai/parlance/internal/dialect"
	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/shared/textutils"
	"github.com/parlance-ai/parlance/internal/tools"
)

const defaultMaxIterations = 5

// Coordinator owns one conversation. It advertises the registry through the
// dialect's system message, sends the history to the chat backend, and feeds
// raw model output through the dialect parser until the model answers in
// plain text or the iteration budget runs out. The registry is read-only for
// the life of the conversation.
type Coordinator struct {
	client  schema.ChatClient
	parser  dialect.Parser
	reg     *tools.Registry
	model   string
	maxIter int

	history schema.Messages
	started bool
}

// Params configures a Coordinator.
type Params struct {
	Client        schema.ChatClient
	Parser        dialect.Parser
	Registry      *tools.Registry
	Model         string
	MaxIterations int
}

// New builds a Coordinator and seeds its history with the dialect's system
// message. A template without the tools placeholder surfaces here, before
// any turn runs.
func New(p Params) (*Coordinator, error) {
	if p.MaxIterations <= 0 {
		p.MaxIterations = defaultMaxIterations
	}
	sys, err := p.Parser.SystemMessage(p.Registry)
	if err != nil {
		return nil, fmt.Errorf("build system message: %w", err)
	}
	return &Coordinator{
		client:  p.Client,
		parser:  p.Parser,
		reg:     p.Registry,
		model:   p.Model,
		maxIter: p.MaxIterations,
		history: schema.NewMessages(sys),
	}, nil
}

// History returns a copy of the conversation so far.
func (c *Coordinator) History() schema.Messages {
	return c.history.Clone()
}

// Run processes one user query. Tool calls are parsed, dispatched, and their
// outcomes appended to history for another model iteration; parse and tool
// failures are fed back verbatim so the model can self-correct. The returned
// TurnResponse is always usable — on the failure path its content is the
// dialect's feedback message.
func (c *Coordinator) Run(ctx context.Context, query string) (schema.TurnResponse, error) {
	formatted := query
	if !c.started {
		formatted = c.parser.FormatQuery(query)
		c.started = true
	}
	c.history.AddUser(formatted)

	var resp schema.TurnResponse
	for i := 0; i < c.maxIter; i++ {
		raw, err := c.client.Chat(ctx, c.model, c.history)
		if err != nil {
			return schema.TurnResponse{}, fmt.Errorf("chat backend: %w", err)
		}
		raw = textutils.StripThink(raw)

		if !c.parser.ContainsCall(raw) {
			// Plain answer: the turn is complete.
			resp = schema.TurnResponse{
				Model:     c.model,
				CreatedAt: time.Now().UTC(),
				Message:   schema.NewAssistantMessage(raw),
				Done:      true,
				Ok:        true,
			}
			c.history.Add(resp.Message)
			return resp, nil
		}

		resp = c.parser.Parse(ctx, raw, c.model, c.reg)
		slog.Debug("parsed tool call",
			"dialect", c.parser.Name(),
			"ok", resp.Ok,
			"content", textutils.Truncate(resp.Message.Content, 120))

		if i+1 >= c.maxIter {
			c.history.Add(resp.Message)
			return resp, nil
		}
		// Feed the outcome back as an annotated intermediate iteration.
		c.history.AddAssistant(c.parser.FormatResponse(resp.Message.Content))
	}
	return resp, nil
}

// RunTurn performs exactly one parse-and-dispatch pass on raw model output.
// It exists for callers that manage the chat exchange themselves and only
// need extraction and dispatch.
func (c *Coordinator) RunTurn(ctx context.Context, raw string) schema.TurnResponse {
	resp := c.parser.Parse(ctx, textutils.StripThink(raw), c.model, c.reg)
	c.history.Add(resp.Message)
	return resp
}
