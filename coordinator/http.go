package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/quizmcp/codec"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/mcp"
)

// HTTPTransport posts JSON-RPC envelopes to a remote /api/mcp endpoint.
// Unlike the subprocess transport there is no handshake precondition; the
// endpoint is stateless from this side.
type HTTPTransport struct {
	url        string
	httpClient *http.Client
	nextID     atomic.Int64
	log        *logger.Logger
}

func NewHTTPTransport(url string) *HTTPTransport {
	return &HTTPTransport{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultCallTimeout,
		},
		log: logger.NewLogger("HTTPTransport", uuid.NewString()),
	}
}

func (t *HTTPTransport) Start(ctx context.Context) error { return nil }

func (t *HTTPTransport) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool arguments: %w", err)
	}
	params, err := json.Marshal(codec.ToolCallParams{Name: name, Arguments: argsJSON})
	if err != nil {
		return nil, err
	}
	reqBody, err := json.Marshal(codec.JSONRPCRequest{
		JSONRPC: codec.JsonRPCVersion,
		ID:      t.nextID.Add(1),
		Method:  mcp.MethodToolsCall,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tool endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tool endpoint returned status %s", resp.Status)
	}

	var rpcResp codec.JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("invalid response from tool endpoint: %w", err)
	}
	if rpcResp.Error != nil {
		msg := rpcResp.Error.Message
		if msg == "" {
			msg = "tool call failed"
		}
		return nil, errors.New(msg)
	}
	return rpcResp.Result, nil
}

func (t *HTTPTransport) Close() error { return nil }
