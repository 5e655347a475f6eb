package config

import (
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
)

// DefaultMCPURL is used for the HTTP transport when no deployment-specific
// endpoint override is set.
const DefaultMCPURL = "http://localhost:3000/api/mcp"

// Config is the environment-driven configuration for the quiz service.
// The model API credential is deliberately absent here: it is read by the
// models package at call time, so a missing key surfaces as a per-call
// error rather than refusing to start.
type Config struct {
	// Serverless marks a managed deployment where no child process can be
	// spawned; tool calls go over HTTP or straight to the in-process
	// registry instead.
	Serverless bool `env:"QUIZ_SERVERLESS,default=false"`

	// MCPURL overrides the HTTP transport endpoint.
	MCPURL string `env:"QUIZ_MCP_URL,default="`

	// AgentBin is the sidecar agent binary. Defaults to re-invoking the
	// current executable with the "agent" subcommand.
	AgentBin string `env:"QUIZ_AGENT_BIN,default="`

	// Provider selects the hosted model backend ("claude" or "ollama").
	Provider string `env:"QUIZ_MODEL_PROVIDER,default=claude"`

	// HTTPAddr is the listen address of the web server.
	HTTPAddr string `env:"QUIZ_HTTP_ADDR,default=localhost:3000"`
}

func Load() (*Config, error) {
	cfg := new(Config)
	if err := envdecode.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config from environment: %w", err)
	}
	return cfg, nil
}

// EndpointURL resolves the HTTP transport endpoint.
func (c *Config) EndpointURL() string {
	if c.MCPURL != "" {
		return c.MCPURL
	}
	return DefaultMCPURL
}

// AgentCommand resolves the sidecar command and arguments.
func (c *Config) AgentCommand() (string, []string) {
	if c.AgentBin != "" {
		return c.AgentBin, nil
	}
	self, err := os.Executable()
	if err != nil {
		self = "quizmcp"
	}
	return self, []string{"agent"}
}
