// Package tools holds the fixed dispatch table mapping tool names to
// handler functions. The same registry backs every transport: the agent
// serves it over stdio, the /api/mcp route serves it over HTTP, and the
// direct transport calls it in-process.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/models"
	"github.com/quizmcp/progress"
	"github.com/quizmcp/types"
)

const (
	ToolGenerateTest   = "generate_jr_web_test"
	ToolGradeTest      = "grade_web_test"
	ToolExplainConcept = "explain_web_concept"
	ToolExplainWrong   = "explain_wrong_answer"
	ToolTrackProgress  = "track_learning_progress"
	ToolProgressStats  = "get_progress_stats"
)

var ErrUnknownTool = errors.New("unknown tool")

// Handler runs one tool call. Handlers never panic on bad model output;
// failures come back inside the ToolCallResult.
type Handler func(ctx context.Context, args json.RawMessage) types.ToolCallResult

// Definition describes a registered tool for tools/list.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type Registry struct {
	query    models.QueryFunc
	store    *progress.Store
	log      *logger.Logger
	handlers map[string]Handler
}

// NewRegistry wires the six quiz tools against a model backend and the
// progress store.
func NewRegistry(query models.QueryFunc, store *progress.Store) *Registry {
	if store == nil {
		store = progress.NewStore()
	}
	r := &Registry{
		query:    query,
		store:    store,
		log:      logger.NewLogger("ToolRegistry", uuid.NewString()),
		handlers: make(map[string]Handler),
	}
	r.handlers[ToolGenerateTest] = r.handleGenerateTest
	r.handlers[ToolGradeTest] = r.handleGradeTest
	r.handlers[ToolExplainConcept] = r.handleExplainConcept
	r.handlers[ToolExplainWrong] = r.handleExplainWrong
	r.handlers[ToolTrackProgress] = r.handleTrackProgress
	r.handlers[ToolProgressStats] = r.handleProgressStats
	return r
}

// Names lists every registered tool name. The set is fixed at compile
// time, so callers can reject unknown names before touching a transport.
func Names() []string {
	return []string{
		ToolGenerateTest,
		ToolGradeTest,
		ToolExplainConcept,
		ToolExplainWrong,
		ToolTrackProgress,
		ToolProgressStats,
	}
}

func IsTool(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Definitions returns tool descriptions for tools/list.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(toolSchemas))
	for _, name := range Names() {
		defs = append(defs, Definition{
			Name:        name,
			Description: toolDescriptions[name],
			InputSchema: toolSchemas[name],
		})
	}
	return defs
}

// Dispatch validates the arguments against the tool's schema and runs the
// handler. An unregistered name fails immediately without any model or
// transport work.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (types.ToolCallResult, error) {
	h, ok := r.handlers[name]
	if !ok {
		return types.ToolCallResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if err := validateArgs(name, args); err != nil {
		return types.ToolCallResult{}, err
	}
	r.log.Infof("dispatching tool %s", name)
	return h(ctx, args), nil
}
