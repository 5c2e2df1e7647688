// Package config loads and persists the parlance configuration.
package config

// Config is the root configuration document (~/.parlance/config.json).
type Config struct {
	Agent   AgentConfig   `json:"agent"`
	Ollama  OllamaConfig  `json:"ollama"`
	Tools   ToolsConfig   `json:"tools"`
	Gateway GatewayConfig `json:"gateway"`
}

// AgentConfig selects the model, its dialect, and the iteration budget for
// one conversation turn.
type AgentConfig struct {
	Model         string `json:"model"`
	Dialect       string `json:"dialect"`
	MaxIterations int    `json:"maxIterations"`
}

// OllamaConfig points at the chat backend.
type OllamaConfig struct {
	BaseURL        string `json:"baseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// ToolsConfig configures the built-in tools.
type ToolsConfig struct {
	Exec ExecConfig `json:"exec"`
	Web  WebConfig  `json:"web"`
}

type ExecConfig struct {
	Enabled        bool   `json:"enabled"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	WorkingDir     string `json:"workingDir"`
}

type WebConfig struct {
	Enabled  bool `json:"enabled"`
	MaxChars int  `json:"maxChars"`
}

// GatewayConfig configures the websocket gateway.
type GatewayConfig struct {
	Addr string `json:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Agent: AgentConfig{
			Model:         "qwen2.5:7b",
			Dialect:       "tagged",
			MaxIterations: 5,
		},
		Ollama: OllamaConfig{
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 120,
		},
		Tools: ToolsConfig{
			Exec: ExecConfig{Enabled: true, TimeoutSeconds: 60},
			Web:  WebConfig{Enabled: true, MaxChars: 50000},
		},
		Gateway: GatewayConfig{Addr: ":18790"},
	}
}
