package tools

import (
	"context"
	"encoding/json"

	"github.com/quizmcp/normalize"
	"github.com/quizmcp/types"
)

// ParseErrorName labels results whose model output was not recoverable
// JSON. The raw output always rides along so the caller can inspect what
// the model actually said.
const ParseErrorName = "ParseError"

func (r *Registry) handleGenerateTest(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req types.GenerateRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	raw, err := r.query(GenerateTestPrompt(req))
	if err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	parsed, ok := normalize.ExtractObject(raw)
	// the test is normalized either way: callers always get the requested
	// question count with ids 1..N and 100 total points
	test := normalize.Test(parsed, req)
	if !ok {
		r.log.Warnf("generate: unparseable model output (%d bytes)", len(raw))
		return types.ToolCallResult{OK: false, Error: ParseErrorName, Raw: raw, Result: test}
	}
	return types.ToolCallResult{OK: true, Result: test}
}

func (r *Registry) handleGradeTest(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req types.GradeRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	raw, err := r.query(GradeTestPrompt(req))
	if err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	parsed, ok := normalize.ExtractObject(raw)
	graded := normalize.Grading(parsed, req.Test, req.Answers)
	if !ok {
		r.log.Warnf("grade: unparseable model output (%d bytes)", len(raw))
		return types.ToolCallResult{OK: false, Error: ParseErrorName, Raw: raw, Result: graded}
	}
	return types.ToolCallResult{OK: true, Result: graded}
}

func (r *Registry) handleExplainConcept(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req struct {
		Question       string `json:"question"`
		StudentAnswer  string `json:"studentAnswer"`
		ExpectedAnswer string `json:"expectedAnswer"`
		Context        string `json:"context"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	raw, err := r.query(ExplainConceptPrompt(req.Question, req.StudentAnswer, req.ExpectedAnswer, req.Context))
	if err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	obj, ok := normalize.ExtractObject(raw)
	if !ok {
		return types.ToolCallResult{OK: false, Error: ParseErrorName, Raw: raw}
	}
	return types.ToolCallResult{OK: true, Result: obj}
}

func (r *Registry) handleExplainWrong(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req struct {
		Question      string `json:"question"`
		StudentAnswer string `json:"studentAnswer"`
		CorrectAnswer string `json:"correctAnswer"`
		Category      string `json:"category"`
		Difficulty    string `json:"difficulty"`
		Context       string `json:"context"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	raw, err := r.query(ExplainWrongPrompt(req.Question, req.StudentAnswer, req.CorrectAnswer, req.Category, req.Difficulty, req.Context))
	if err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	obj, ok := normalize.ExtractObject(raw)
	if !ok {
		return types.ToolCallResult{OK: false, Error: ParseErrorName, Raw: raw}
	}
	return types.ToolCallResult{OK: true, Result: obj}
}

func (r *Registry) handleTrackProgress(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req struct {
		UserID            string             `json:"userId"`
		TestResults       []types.TestRecord `json:"testResults"`
		CurrentDifficulty string             `json:"currentDifficulty"`
		Subject           string             `json:"subject"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	stats := r.store.Record(req.UserID, req.TestResults, req.CurrentDifficulty, req.Subject)
	return types.ToolCallResult{OK: true, Result: stats}
}

func (r *Registry) handleProgressStats(ctx context.Context, args json.RawMessage) types.ToolCallResult {
	var req struct {
		UserID    string `json:"userId"`
		Timeframe string `json:"timeframe"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return types.ToolCallResult{OK: false, Error: err.Error()}
	}

	return types.ToolCallResult{OK: true, Result: r.store.Stats(req.UserID, req.Timeframe)}
}
