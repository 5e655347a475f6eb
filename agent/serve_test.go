package agent

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quizmcp/codec"
	"github.com/quizmcp/progress"
	"github.com/quizmcp/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *tools.Registry {
	query := func(string) (string, error) {
		return `{"title":"Quiz","questions":[{"id":1,"question":"Q?","points":100}]}`, nil
	}
	return tools.NewRegistry(query, progress.NewStore())
}

func runServe(t *testing.T, input string) ([]codec.JSONRPCResponse, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	require.NoError(t, serve(testRegistry(), strings.NewReader(input), &out, &errOut))

	var resps []codec.JSONRPCResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp codec.JSONRPCResponse
		require.NoError(t, dec.Decode(&resp))
		resps = append(resps, resp)
	}
	return resps, errOut.String()
}

func TestServePrintsReadyMarker(t *testing.T) {
	_, stderr := runServe(t, "")
	assert.Contains(t, stderr, ReadyMarker)
}

func TestServeInitializeHandshake(t *testing.T) {
	resps, _ := runServe(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n")

	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	require.NoError(t, json.Unmarshal(resps[0].Result, &result))
	assert.NotEmpty(t, result.ProtocolVersion)
}

func TestServeToolsCall(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"generate_jr_web_test","arguments":{"topics":["css"],"numQuestions":1}}}` + "\n"
	resps, _ := runServe(t, input)

	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	var result struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(resps[0].Result, &result))
	assert.True(t, result.OK)
}

func TestServeUnknownMethod(t *testing.T) {
	resps, _ := runServe(t, `{"jsonrpc":"2.0","id":2,"method":"resources/list"}`+"\n")

	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, codec.MethodNotFound, resps[0].Error.Code)
}

func TestServeUnknownToolIsInvalidParams(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"make_coffee","arguments":{}}}` + "\n"
	resps, _ := runServe(t, input)

	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, codec.InvalidParams, resps[0].Error.Code)
}

func TestServeIgnoresNotifications(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":4,"method":"ping"}` + "\n"
	resps, _ := runServe(t, input)

	require.Len(t, resps, 1, "notifications get no reply")
	id, _ := codec.IDAsInt64(resps[0].ID)
	assert.Equal(t, int64(4), id)
}
