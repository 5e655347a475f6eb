package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/quizmcp/codec"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/mcp"
	"github.com/quizmcp/tools"
)

// Serve runs the agent side of the stdio transport: read one JSON-RPC
// request per line from stdin, write one response per line to stdout.
// Non-protocol noise belongs on stderr; stdout carries nothing but
// envelopes. Serve prints the ready marker and returns when stdin closes
// or a termination signal arrives.
func Serve(reg *tools.Registry) error {
	return serve(reg, os.Stdin, os.Stdout, os.Stderr)
}

func serve(reg *tools.Registry, in io.Reader, out, errOut io.Writer) error {
	log := logger.NewLogger("Agent", uuid.NewString())
	fmt.Fprintln(errOut, ReadyMarker)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	framer := codec.NewFramer()
	lines := make(chan []byte, 16)
	go func() {
		defer close(lines)
		buf := make([]byte, 4096)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				lines <- chunk
			}
			if err != nil {
				return
			}
		}
	}()

	enc := json.NewEncoder(out)
	ctx := context.Background()
	for {
		select {
		case <-sig:
			log.Info("shutting down on signal")
			return nil
		case chunk, ok := <-lines:
			if !ok {
				log.Info("stdin closed, shutting down")
				return nil
			}
			for _, msg := range framer.Feed(chunk) {
				resp := handleMessage(ctx, reg, log, msg)
				if resp == nil {
					continue
				}
				if err := enc.Encode(resp); err != nil {
					return fmt.Errorf("failed to write response: %w", err)
				}
			}
		}
	}
}

func handleMessage(ctx context.Context, reg *tools.Registry, log *logger.Logger, msg codec.Message) *codec.JSONRPCResponse {
	if !msg.IsRequest() {
		// notifications need no reply; stray responses are not ours to answer
		return nil
	}

	switch msg.Method {
	case mcp.MethodInitialize:
		return successOrInternal(msg.ID, mcp.NewInitializeResult())
	case mcp.MethodPing:
		return successOrInternal(msg.ID, map[string]any{})
	case mcp.MethodToolsList:
		return successOrInternal(msg.ID, map[string]any{"tools": tools.Definitions()})
	case mcp.MethodToolsCall:
		var params codec.ToolCallParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return codec.NewErrorResponse(msg.ID, codec.InvalidParams, err.Error())
		}
		result, err := reg.Dispatch(ctx, params.Name, params.Arguments)
		if err != nil {
			if errors.Is(err, tools.ErrUnknownTool) || strings.Contains(err.Error(), "invalid arguments") {
				return codec.NewErrorResponse(msg.ID, codec.InvalidParams, err.Error())
			}
			return codec.NewErrorResponse(msg.ID, codec.InternalError, err.Error())
		}
		return successOrInternal(msg.ID, result)
	default:
		log.Warnf("unsupported method: %s", msg.Method)
		return codec.NewErrorResponse(msg.ID, codec.MethodNotFound, "")
	}
}

func successOrInternal(id any, result any) *codec.JSONRPCResponse {
	resp, err := codec.NewSuccessResponse(id, result)
	if err != nil {
		return codec.NewErrorResponse(id, codec.InternalError, err.Error())
	}
	return resp
}
