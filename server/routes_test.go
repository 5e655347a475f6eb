package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quizmcp/coordinator"
	"github.com/quizmcp/handlers"
	"github.com/quizmcp/progress"
	"github.com/quizmcp/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() http.Handler {
	query := func(string) (string, error) {
		return `{"title":"Quiz","questions":[{"id":1,"question":"Q?","points":100}]}`, nil
	}
	reg := tools.NewRegistry(query, progress.NewStore())
	coord := coordinator.New(coordinator.NewDirectTransport(reg))
	api := handlers.NewAPI(coord, "claude")
	return SetupRoutes(api, handlers.MCPHandler(reg))
}

func TestRoutesRoot(t *testing.T) {
	ts := httptest.NewServer(testRouter())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutesGenerate(t *testing.T) {
	ts := httptest.NewServer(testRouter())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/tests/generate", "application/json",
		strings.NewReader(`{"topics":["css"],"numQuestions":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestRoutesMCPEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutesUnknownPath(t *testing.T) {
	ts := httptest.NewServer(testRouter())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
