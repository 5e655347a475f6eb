package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizmcp/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shProcess(t *testing.T, script string) *Process {
	t.Helper()
	p := NewProcess("sh", []string{"-c", script}, nil)
	require.NoError(t, p.Start())
	return p
}

func TestProcessReadyMarker(t *testing.T) {
	p := shProcess(t, `echo "quizmcp agent ready" >&2; cat`)
	defer p.Stop()

	require.NoError(t, p.WaitReady(ReadyAttemptsFast))
	assert.True(t, p.Ready())
}

func TestProcessSendAndReceive(t *testing.T) {
	p := shProcess(t, `read line; echo '{"jsonrpc":"2.0","id":1,"result":{"ok":true}}'`)
	defer p.Stop()

	require.NoError(t, p.Send(codec.JSONRPCRequest{
		JSONRPC: codec.JsonRPCVersion,
		ID:      1,
		Method:  "ping",
	}))

	select {
	case msg, ok := <-p.Messages():
		require.True(t, ok)
		assert.True(t, msg.IsResponse())
		id, _ := codec.IDAsInt64(msg.ID)
		assert.Equal(t, int64(1), id)
	case <-time.After(5 * time.Second):
		t.Fatal("no response from child process")
	}
}

func TestProcessWaitReadyExitedChild(t *testing.T) {
	p := shProcess(t, `exit 3`)

	err := p.WaitReady(ReadyAttemptsSlow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExited))
	assert.False(t, errors.Is(err, ErrConnectTimeout), "death and timeout are distinct conditions")
}

func TestProcessWaitReadyBudgetExhausted(t *testing.T) {
	p := shProcess(t, `cat`)
	defer p.Stop()

	err := p.WaitReady(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectTimeout))
}

func TestProcessStopIdempotent(t *testing.T) {
	p := shProcess(t, `cat`)

	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit after Stop")
	}
	assert.True(t, p.Stopping())
	assert.ErrorIs(t, p.Send("anything"), ErrExited)
}

func TestProcessSpawnFailure(t *testing.T) {
	p := NewProcess("/nonexistent/quizmcp-agent", nil, nil)
	require.Error(t, p.Start())
}

func TestLauncherDeliberateStopSuppressesRestart(t *testing.T) {
	l := NewLauncher("sh", []string{"-c", "cat"})

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	time.Sleep(200 * time.Millisecond)
	l.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err, "a deliberate stop is not a failure")
	case <-time.After(10 * time.Second):
		t.Fatal("launcher did not return after Stop")
	}

	// Stop again is safe
	l.Stop()
}
