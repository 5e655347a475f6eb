package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmcp/codec"
	"github.com/quizmcp/mcp"
	"github.com/quizmcp/tools"
)

// MCPHandler is the server side of the HTTP transport: it accepts the same
// JSON-RPC envelopes the stdio agent speaks, dispatched straight into the
// in-process registry.
func MCPHandler(reg *tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := codec.ParseJSONRPCRequest(r)
		if err != nil {
			codec.WriteJSONRPCError(w, codec.InvalidRequest, err.Error(), nil)
			return
		}

		switch req.Method {
		case mcp.MethodInitialize:
			codec.WriteJSONRPCResponse(w, mcp.NewInitializeResult(), req.ID)
		case mcp.MethodPing:
			codec.WriteJSONRPCResponse(w, map[string]any{}, req.ID)
		case mcp.MethodToolsList:
			codec.WriteJSONRPCResponse(w, map[string]any{"tools": tools.Definitions()}, req.ID)
		case mcp.MethodToolsCall:
			var params codec.ToolCallParams
			if err := json.Unmarshal(req.Params, &params); err != nil {
				codec.WriteJSONRPCError(w, codec.InvalidParams, err.Error(), req.ID)
				return
			}
			result, err := reg.Dispatch(r.Context(), params.Name, params.Arguments)
			if err != nil {
				code := codec.InternalError
				if errors.Is(err, tools.ErrUnknownTool) {
					code = codec.InvalidParams
				}
				codec.WriteJSONRPCError(w, code, err.Error(), req.ID)
				return
			}
			codec.WriteJSONRPCResponse(w, result, req.ID)
		default:
			codec.WriteJSONRPCError(w, codec.MethodNotFound, "", req.ID)
		}
	}
}
