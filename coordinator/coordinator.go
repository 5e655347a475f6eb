package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/quizmcp/agent"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/tools"
)

// Coordinator presents one CallTool interface over whichever transport
// backs it. It is constructed explicitly and handed to the route handlers;
// its lifecycle belongs to the server's startup and shutdown, not to a
// package-level singleton.
type Coordinator struct {
	transport Transport
	log       *logger.Logger

	mu         sync.Mutex
	connected  bool
	connecting *connectAttempt
}

// connectAttempt carries one connection attempt's outcome. Waiters hold a
// reference to the attempt they joined, so a later reconnect can never
// rewrite the error they observe.
type connectAttempt struct {
	done chan struct{}
	err  error
}

func New(t Transport) *Coordinator {
	return &Coordinator{
		transport: t,
		log:       logger.NewLogger("Coordinator", uuid.NewString()),
	}
}

// Initialize connects the underlying transport. Already connected is an
// immediate success. Concurrent callers racing before the first connection
// completes share a single in-flight attempt: exactly one handshake runs,
// and every caller sees its outcome.
func (c *Coordinator) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	if c.connecting != nil {
		att := c.connecting
		c.mu.Unlock()
		select {
		case <-att.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		return att.err
	}

	att := &connectAttempt{done: make(chan struct{})}
	c.connecting = att
	c.mu.Unlock()

	err := c.transport.Start(ctx)
	if err != nil {
		c.log.Errorf("transport connect failed: %v", err)
	}

	c.mu.Lock()
	c.connected = err == nil
	c.connecting = nil
	c.mu.Unlock()

	att.err = err
	close(att.done)
	return err
}

// CallTool invokes a named tool through the selected transport, connecting
// lazily first. Unknown names fail before any transport work. Transport
// failures surface as errors; the coordinator never substitutes a
// fabricated result.
func (c *Coordinator) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	if !tools.IsTool(name) {
		return nil, fmt.Errorf("%w: %s", tools.ErrUnknownTool, name)
	}
	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}

	result, err := c.transport.CallTool(ctx, name, args)
	if err != nil {
		if errors.Is(err, agent.ErrExited) {
			// the sidecar died mid-session; reconnect lazily on the next call
			c.log.Warn("agent exited, marking disconnected")
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
		}
		return nil, err
	}
	return result, nil
}

// Connected reports the coordinator's view of the transport.
func (c *Coordinator) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears the transport down. Idempotent.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
	return c.transport.Close()
}
