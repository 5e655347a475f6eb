package codec

import (
	"encoding/json"
	"errors"
	"net/http"
)

const JsonRPCVersion = "2.0"

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id"`
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      any             `json:"id"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Notification is a one-way message that carries no id and expects no
// response.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// ToolCallParams is the params payload of a "tools/call" request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// JSON-RPC 2.0 standard error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

var rpcErrorMessages = map[int]string{
	ParseError:     "Parse error",
	InvalidRequest: "Invalid Request",
	MethodNotFound: "Method not found",
	InvalidParams:  "Invalid params",
	InternalError:  "Internal error",
}

// NewSuccessResponse builds a result envelope for the given request id.
func NewSuccessResponse(id any, result any) (*JSONRPCResponse, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &JSONRPCResponse{JSONRPC: JsonRPCVersion, Result: raw, ID: id}, nil
}

// NewErrorResponse builds an error envelope. An empty message falls back
// to the standard text for the code.
func NewErrorResponse(id any, code int, message string) *JSONRPCResponse {
	if message == "" {
		message = rpcErrorMessages[code]
	}
	return &JSONRPCResponse{
		JSONRPC: JsonRPCVersion,
		Error:   &RPCError{Code: code, Message: message},
		ID:      id,
	}
}

func ParseJSONRPCRequest(r *http.Request) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if req.JSONRPC != JsonRPCVersion {
		return nil, errors.New("invalid jsonrpc version")
	}
	if req.Method == "" {
		return nil, errors.New("missing method")
	}
	return &req, nil
}

func WriteJSONRPCResponse(w http.ResponseWriter, result any, id any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	resp := JSONRPCResponse{
		JSONRPC: JsonRPCVersion,
		Result:  raw,
		ID:      id,
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

func WriteJSONRPCError(w http.ResponseWriter, code int, message string, id any) error {
	if message == "" {
		message = rpcErrorMessages[code]
	}
	resp := JSONRPCResponse{
		JSONRPC: JsonRPCVersion,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
		ID: id,
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}
