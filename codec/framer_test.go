package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramerSplitChunks(t *testing.T) {
	f := NewFramer()

	msgs := f.Feed([]byte(`{"jsonrpc":"2.0","id":1,"re`))
	assert.Empty(t, msgs)

	msgs = f.Feed([]byte("sult\":{\"ok\":true}}\n"))
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsResponse())

	id, ok := IDAsInt64(msgs[0].ID)
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestFramerMultipleMessagesOneChunk(t *testing.T) {
	f := NewFramer()

	chunk := []byte(`{"jsonrpc":"2.0","id":1,"result":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"error":{"code":-32603,"message":"boom"}}` + "\n")
	msgs := f.Feed(chunk)

	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].IsResponse())
	assert.True(t, msgs[1].IsResponse())
	require.NotNil(t, msgs[1].Error)
	assert.Equal(t, "boom", msgs[1].Error.Message)
}

func TestFramerSkipsInterleavedLogOutput(t *testing.T) {
	f := NewFramer()

	chunk := []byte("starting up...\n" +
		`{"level":"info","msg":"not an rpc envelope"}` + "\n" +
		"\n" +
		`{"jsonrpc":"2.0","id":7,"result":{"ok":true}}` + "\n")
	msgs := f.Feed(chunk)

	require.Len(t, msgs, 1)
	id, _ := IDAsInt64(msgs[0].ID)
	assert.Equal(t, int64(7), id)
}

func TestFramerNotification(t *testing.T) {
	f := NewFramer()

	msgs := f.Feed([]byte(`{"jsonrpc":"2.0","method":"notifications/progress","params":{}}` + "\n"))
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsNotification())
	assert.False(t, msgs[0].IsResponse())
}

func TestFramerRoundTrip(t *testing.T) {
	f := NewFramer()

	out, err := f.Serialize(JSONRPCRequest{
		JSONRPC: JsonRPCVersion,
		ID:      3,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"grade_web_test"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])

	msgs := f.Feed(out)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsRequest())
	assert.Equal(t, "tools/call", msgs[0].Method)
}

func TestIDAsInt64(t *testing.T) {
	if _, ok := IDAsInt64("abc"); ok {
		t.Error("string ids should not convert")
	}
	if _, ok := IDAsInt64(nil); ok {
		t.Error("nil ids should not convert")
	}
	n, ok := IDAsInt64(float64(12))
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)
}
