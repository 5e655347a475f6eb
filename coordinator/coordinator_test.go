package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quizmcp/agent"
	"github.com/quizmcp/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport counts Start calls and returns canned results.
type fakeTransport struct {
	starts     atomic.Int64
	startDelay time.Duration
	startErr   error
	callErr    error
	result     json.RawMessage
}

func (f *fakeTransport) Start(ctx context.Context) error {
	f.starts.Add(1)
	if f.startDelay > 0 {
		time.Sleep(f.startDelay)
	}
	return f.startErr
}

func (f *fakeTransport) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.result, nil
}

func (f *fakeTransport) Close() error { return nil }

func TestCallToolConnectsLazily(t *testing.T) {
	f := &fakeTransport{result: json.RawMessage(`{"ok":true}`)}
	c := New(f)

	assert.False(t, c.Connected())

	res, err := c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(res))
	assert.True(t, c.Connected())
	assert.Equal(t, int64(1), f.starts.Load())

	// second call reuses the connection
	_, err = c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.starts.Load())
}

func TestConcurrentCallsShareOneHandshake(t *testing.T) {
	f := &fakeTransport{result: json.RawMessage(`{}`), startDelay: 50 * time.Millisecond}
	c := New(f)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CallTool(context.Background(), tools.ToolProgressStats, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), f.starts.Load())
}

func TestUnknownToolFailsBeforeTransport(t *testing.T) {
	f := &fakeTransport{}
	c := New(f)

	_, err := c.CallTool(context.Background(), "delete_everything", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, tools.ErrUnknownTool)
	assert.Equal(t, int64(0), f.starts.Load(), "transport must not be touched for unknown tools")
}

func TestConnectFailureSurfacesToAllWaiters(t *testing.T) {
	boom := errors.New("spawn failed")
	f := &fakeTransport{startErr: boom, startDelay: 20 * time.Millisecond}
	c := New(f)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CallTool(context.Background(), tools.ToolGradeTest, nil)
			assert.ErrorIs(t, err, boom)
		}()
	}
	wg.Wait()
	assert.False(t, c.Connected())
}

// blockingTransport parks Start until the test releases it with an error.
type blockingTransport struct {
	start chan error
}

func (b *blockingTransport) Start(ctx context.Context) error { return <-b.start }

func (b *blockingTransport) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (b *blockingTransport) Close() error { return nil }

func TestConnectErrorIsPerAttempt(t *testing.T) {
	bt := &blockingTransport{start: make(chan error)}
	c := New(bt)

	err1 := errors.New("first spawn failed")
	err2 := errors.New("second spawn failed")

	// two callers join the first attempt: one leads, one waits
	firstWave := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			firstWave <- c.Initialize(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	bt.start <- err1

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, <-firstWave, err1)
	}

	// a later attempt fails differently; its error must not leak backward
	secondWave := make(chan error, 1)
	go func() {
		secondWave <- c.Initialize(context.Background())
	}()
	bt.start <- err2
	assert.ErrorIs(t, <-secondWave, err2)
	assert.False(t, c.Connected())
}

func TestAgentExitTriggersLazyReconnect(t *testing.T) {
	f := &fakeTransport{callErr: agent.ErrExited}
	c := New(f)

	_, err := c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.ErrorIs(t, err, agent.ErrExited)
	assert.False(t, c.Connected())

	// next call reconnects
	f.callErr = nil
	f.result = json.RawMessage(`{"ok":true}`)
	_, err = c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.starts.Load())
}

func TestNonExitErrorKeepsConnection(t *testing.T) {
	f := &fakeTransport{callErr: errors.New("model unavailable")}
	c := New(f)

	_, err := c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.Error(t, err)
	assert.True(t, c.Connected(), "ordinary tool failures must not drop the connection")
}

func TestCloseIsIdempotent(t *testing.T) {
	f := &fakeTransport{result: json.RawMessage(`{}`)}
	c := New(f)

	_, err := c.CallTool(context.Background(), tools.ToolGenerateTest, nil)
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
	assert.False(t, c.Connected())
}
