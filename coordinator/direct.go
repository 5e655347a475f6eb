package coordinator

import (
	"context"
	"encoding/json"

	"github.com/quizmcp/tools"
)

// DirectTransport invokes tool handlers in-process. Used server-side in
// serverless deployments, where routing a call through the network back to
// ourselves would be a pointless round trip.
type DirectTransport struct {
	reg *tools.Registry
}

func NewDirectTransport(reg *tools.Registry) *DirectTransport {
	return &DirectTransport{reg: reg}
}

func (t *DirectTransport) Start(ctx context.Context) error { return nil }

func (t *DirectTransport) CallTool(ctx context.Context, name string, args any) (json.RawMessage, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	result, err := t.reg.Dispatch(ctx, name, argsJSON)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func (t *DirectTransport) Close() error { return nil }
