// Package dependency wires the application graph.
package dependency

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/dig"

	"github.com/parlance-ai/parlance/internal/agent"
	"github.com/parlance-ai/parlance/internal/client"
	"github.com/parlance-ai/parlance/internal/config"
	"github.com/parlance-ai/parlance/internal/cron"
	"github.com/parlance-ai/parlance/internal/dialect"
	"github.com/parlance-ai/parlance/internal/gateway"
	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// templated is satisfied by every dialect parser that accepts a system
// template override from the prompt pack.
type templated interface {
	SetTemplate(string)
}

// ConversationFactory builds a fresh Coordinator with its own history.
type ConversationFactory func() (*agent.Coordinator, error)

// Container holds the wired application graph.
type Container struct {
	dig *dig.Container
}

// New builds the graph from the config file at configPath (the default
// location when empty).
func New(configPath string) (*Container, error) {
	c := dig.New()

	providers := []any{
		func() (*config.Config, error) { return config.Load(configPath) },
		func() (config.PromptPack, error) { return config.LoadPrompts("") },
		newChatClient,
		newRegistry,
		newParser,
		newConversationFactory,
		newCronService,
		newGatewayServer,
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return nil, fmt.Errorf("wire dependencies: %w", err)
		}
	}
	return &Container{dig: c}, nil
}

func newChatClient(cfg *config.Config) schema.ChatClient {
	return client.NewOllama(cfg.Ollama.BaseURL, time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second)
}

// newRegistry assembles the built-in tools enabled by config. The clock tool
// is always on; exec and web_fetch are opt-out.
func newRegistry(cfg *config.Config) *tools.Registry {
	b := tools.NewRegistryBuilder().WithTool(tools.NewClockTool())
	if cfg.Tools.Web.Enabled {
		b = b.WithTool(tools.NewWebFetchTool(cfg.Tools.Web.MaxChars))
	}
	if cfg.Tools.Exec.Enabled {
		b = b.WithTool(tools.NewExecTool(cfg.Tools.Exec.WorkingDir, cfg.Tools.Exec.TimeoutSeconds))
	}
	return b.Build()
}

func newParser(cfg *config.Config, pack config.PromptPack) (dialect.Parser, error) {
	p, err := dialect.New(cfg.Agent.Dialect)
	if err != nil {
		return nil, err
	}
	if tpl, ok := pack[cfg.Agent.Dialect]; ok {
		if t, ok := p.(templated); ok {
			t.SetTemplate(tpl)
		}
	}
	return p, nil
}

func newConversationFactory(cfg *config.Config, cc schema.ChatClient, p dialect.Parser, reg *tools.Registry) ConversationFactory {
	return func() (*agent.Coordinator, error) {
		return agent.New(agent.Params{
			Client:        cc,
			Parser:        p,
			Registry:      reg,
			Model:         cfg.Agent.Model,
			MaxIterations: cfg.Agent.MaxIterations,
		})
	}
}

// newCronService routes every fired job through a fresh conversation.
func newCronService(factory ConversationFactory) *cron.Service {
	svc := cron.NewService(filepath.Join(config.DataDir(), "cron", "jobs.json"))
	svc.SetOnJob(func(ctx context.Context, job cron.Job) (string, error) {
		convo, err := factory()
		if err != nil {
			return "", err
		}
		resp, err := convo.Run(ctx, job.Message)
		if err != nil {
			return "", err
		}
		return resp.Message.Content, nil
	})
	return svc
}

func newGatewayServer(cfg *config.Config, factory ConversationFactory) *gateway.Server {
	return gateway.New(cfg.Gateway.Addr, gateway.ConversationFactory(factory))
}

// Config resolves the loaded configuration.
func (c *Container) Config() (*config.Config, error) {
	var out *config.Config
	err := c.dig.Invoke(func(cfg *config.Config) { out = cfg })
	return out, err
}

// Registry resolves the tool registry.
func (c *Container) Registry() (*tools.Registry, error) {
	var out *tools.Registry
	err := c.dig.Invoke(func(r *tools.Registry) { out = r })
	return out, err
}

// Parser resolves the configured dialect parser.
func (c *Container) Parser() (dialect.Parser, error) {
	var out dialect.Parser
	err := c.dig.Invoke(func(p dialect.Parser) { out = p })
	return out, err
}

// NewCoordinator builds a fresh conversation.
func (c *Container) NewCoordinator() (*agent.Coordinator, error) {
	var factory ConversationFactory
	if err := c.dig.Invoke(func(f ConversationFactory) { factory = f }); err != nil {
		return nil, err
	}
	return factory()
}

// Cron resolves the scheduler service.
func (c *Container) Cron() (*cron.Service, error) {
	var out *cron.Service
	err := c.dig.Invoke(func(s *cron.Service) { out = s })
	return out, err
}

// Gateway resolves the websocket server.
func (c *Container) Gateway() (*gateway.Server, error) {
	var out *gateway.Server
	err := c.dig.Invoke(func(s *gateway.Server) { out = s })
	return out, err
}
