// Package coordinator multiplexes tool calls over one of three equivalent
// transports: a local subprocess speaking newline-delimited JSON-RPC over
// stdio, an HTTP endpoint accepting the same envelopes, or a direct
// in-process call into the tool registry. The transport is chosen once at
// construction time from the deployment configuration.
package coordinator

import (
	"context"
	"encoding/json"

	"github.com/quizmcp/config"
	"github.com/quizmcp/tools"
)

// Transport carries tool calls to wherever the tool handlers live.
type Transport interface {
	// Start establishes the connection. The Coordinator guarantees a
	// single caller at a time via its connect guard.
	Start(ctx context.Context) error

	// CallTool invokes a named tool and returns its raw JSON result.
	// Transport-level failures come back as errors, never as fabricated
	// results.
	CallTool(ctx context.Context, name string, args any) (json.RawMessage, error)

	// Close releases the transport. Must be idempotent.
	Close() error
}

// Select picks the transport for this deployment. Serverless environments
// cannot spawn a sidecar: they dispatch in-process when the registry is at
// hand (the server itself), or over HTTP otherwise. Everything else runs
// the subprocess transport.
func Select(cfg *config.Config, reg *tools.Registry) Transport {
	if cfg.Serverless {
		// An explicit endpoint override wins even when the registry is
		// in-process, so a deployment can fan calls out to a dedicated
		// tool service.
		if cfg.MCPURL == "" && reg != nil {
			return NewDirectTransport(reg)
		}
		return NewHTTPTransport(cfg.EndpointURL())
	}
	command, args := cfg.AgentCommand()
	return NewSubprocessTransport(command, args)
}
