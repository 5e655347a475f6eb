package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/quizmcp/agent"
	"github.com/quizmcp/codec"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/mcp"
)

var ErrNotConnected = errors.New("subprocess transport not connected")

// SubprocessTransport runs the agent as a child process and correlates
// JSON-RPC requests and responses over its stdio. The correlator outlives
// individual agent processes, so request ids keep increasing across a
// restart and a late response from a dead process can never satisfy a new
// request.
type SubprocessTransport struct {
	command string
	args    []string
	corr    *Correlator
	log     *logger.Logger

	mu   sync.Mutex
	proc *agent.Process
}

func NewSubprocessTransport(command string, args []string) *SubprocessTransport {
	return &SubprocessTransport{
		command: command,
		args:    args,
		corr:    NewCorrelator(),
		log:     logger.NewLogger("SubprocessTransport", uuid.NewString()),
	}
}

// Start spawns the agent and performs the connect sequence: wait for the
// stderr ready marker, then run the initialize handshake. The marker is an
// optimization, not a requirement — if it never appears the handshake
// alone decides, so both connect signals the agent might emit are honored.
func (t *SubprocessTransport) Start(ctx context.Context) error {
	proc := agent.NewProcess(t.command, t.args, nil)
	if err := proc.Start(); err != nil {
		return err
	}

	t.mu.Lock()
	t.proc = proc
	t.mu.Unlock()
	go t.pump(proc)

	if err := proc.WaitReady(agent.ReadyAttemptsFast); err != nil {
		if errors.Is(err, agent.ErrExited) {
			return fmt.Errorf("agent died before connecting: %w", err)
		}
		t.log.Warn("no ready marker from agent, relying on handshake")
	}

	if err := t.initialize(ctx); err != nil {
		_ = proc.Stop()
		return fmt.Errorf("agent handshake failed: %w", err)
	}
	t.log.Info("agent connected")
	return nil
}

// pump routes framed agent output into the correlator. When the stream
// ends, every in-flight request is failed so no caller hangs on a dead
// process.
func (t *SubprocessTransport) pump(proc *agent.Process) {
	for msg := range proc.Messages() {
		if msg.IsResponse() {
			t.corr.Complete(msg)
			continue
		}
		// this protocol has no agent-initiated requests
		t.log.Warnf("dropping unexpected agent message (method=%q)", msg.Method)
	}
	t.corr.FailAll(agent.ErrExited)
}

func (t *SubprocessTransport) initialize(ctx context.Context) error {
	params, err := json.Marshal(mcp.NewInitializeParams())
	if err != nil {
		return err
	}
	_, err = t.roundTrip(ctx, mcp.MethodInitialize, params)
	return err
}

func (t *SubprocessTransport) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool arguments: %w", err)
	}
	params, err := json.Marshal(codec.ToolCallParams{Name: name, Arguments: argsJSON})
	if err != nil {
		return nil, err
	}
	return t.roundTrip(ctx, mcp.MethodToolsCall, params)
}

func (t *SubprocessTransport) roundTrip(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	t.mu.Lock()
	proc := t.proc
	t.mu.Unlock()
	if proc == nil {
		return nil, ErrNotConnected
	}

	id, outcome := t.corr.Issue(method)
	req := codec.JSONRPCRequest{
		JSONRPC: codec.JsonRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := proc.Send(req); err != nil {
		t.corr.Discard(id)
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	select {
	case <-ctx.Done():
		t.corr.Discard(id)
		return nil, ctx.Err()
	case out := <-outcome:
		return out.Result, out.Err
	}
}

func (t *SubprocessTransport) Close() error {
	t.mu.Lock()
	proc := t.proc
	t.proc = nil
	t.mu.Unlock()
	if proc == nil {
		return nil
	}
	return proc.Stop()
}
