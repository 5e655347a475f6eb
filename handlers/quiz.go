// Package handlers exposes the quiz operations over HTTP: REST-ish routes
// for the web client plus the /api/mcp JSON-RPC endpoint.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/quizmcp/coordinator"
	"github.com/quizmcp/logger"
	"github.com/quizmcp/models"
	"github.com/quizmcp/normalize"
	"github.com/quizmcp/tools"
	"github.com/quizmcp/types"
)

// API serves the quiz routes. Every LLM-backed route tries the coordinator
// first; when the tool path is down it falls back to prompting the model
// directly so the client still gets an answer.
type API struct {
	coord    *coordinator.Coordinator
	provider string
	direct   models.DirectFunc
	log      *logger.Logger
}

func NewAPI(coord *coordinator.Coordinator, provider string) *API {
	return &API{
		coord:    coord,
		provider: provider,
		direct:   models.DirectAnswer,
		log:      logger.NewLogger("API", uuid.NewString()),
	}
}

func (a *API) GenerateTest(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ToolCallResult{OK: false, Error: "invalid request body"})
		return
	}

	raw, err := a.coord.CallTool(r.Context(), tools.ToolGenerateTest, req)
	if err == nil {
		writeRaw(w, raw)
		return
	}
	a.log.Warnf("generate via coordinator failed: %v, falling back to direct model call", err)

	instruction := fmt.Sprintf(
		"Write a junior web development quiz on %v as a JSON object with fields \"title\" and \"questions\". Each question has id, type, question, options, correctAnswer and points.",
		req.Topics)
	text, derr := a.direct(a.provider, instruction, req)
	if derr != nil {
		writeJSON(w, http.StatusBadGateway, types.ToolCallResult{OK: false, Error: err.Error()})
		return
	}

	parsed, ok := normalize.ExtractObject(text)
	test := normalize.Test(parsed, req)
	if !ok {
		writeJSON(w, http.StatusOK, types.ToolCallResult{OK: false, Error: tools.ParseErrorName, Raw: text, Result: test})
		return
	}
	writeJSON(w, http.StatusOK, types.ToolCallResult{OK: true, Result: test})
}

func (a *API) GradeTest(w http.ResponseWriter, r *http.Request) {
	var req types.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ToolCallResult{OK: false, Error: "invalid request body"})
		return
	}

	raw, err := a.coord.CallTool(r.Context(), tools.ToolGradeTest, req)
	if err == nil {
		writeRaw(w, raw)
		return
	}
	a.log.Warnf("grade via coordinator failed: %v, falling back to direct model call", err)

	instruction := "Grade the student's answers to this quiz. Return a JSON object with fields \"results\" (questionId, score, maxScore, correct, feedback per question), \"overallScore\" and \"summary\"."
	text, derr := a.direct(a.provider, instruction, req)
	if derr != nil {
		writeJSON(w, http.StatusBadGateway, types.ToolCallResult{OK: false, Error: err.Error()})
		return
	}

	parsed, ok := normalize.ExtractObject(text)
	grading := normalize.Grading(parsed, req.Test, req.Answers)
	if !ok {
		writeJSON(w, http.StatusOK, types.ToolCallResult{OK: false, Error: tools.ParseErrorName, Raw: text, Result: grading})
		return
	}
	writeJSON(w, http.StatusOK, types.ToolCallResult{OK: true, Result: grading})
}

type explainRequest struct {
	Question       string `json:"question"`
	StudentAnswer  string `json:"studentAnswer,omitempty"`
	ExpectedAnswer string `json:"expectedAnswer,omitempty"`
	CorrectAnswer  string `json:"correctAnswer,omitempty"`
	Category       string `json:"category,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	Context        string `json:"context,omitempty"`
}

func (a *API) ExplainConcept(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ToolCallResult{OK: false, Error: "invalid request body"})
		return
	}

	raw, err := a.coord.CallTool(r.Context(), tools.ToolExplainConcept, req)
	if err == nil {
		writeRaw(w, raw)
		return
	}
	a.explainFallback(w, err, "Explain this web development concept to a junior developer. Return a JSON object with fields \"explanation\", \"examples\" and \"resources\".", req)
}

func (a *API) ExplainWrong(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ToolCallResult{OK: false, Error: "invalid request body"})
		return
	}

	raw, err := a.coord.CallTool(r.Context(), tools.ToolExplainWrong, req)
	if err == nil {
		writeRaw(w, raw)
		return
	}
	a.explainFallback(w, err, "Explain why the student's answer to this question is wrong and what the correct answer is. Return a JSON object with fields \"explanation\", \"correctApproach\" and \"commonMistake\".", req)
}

func (a *API) explainFallback(w http.ResponseWriter, callErr error, instruction string, payload any) {
	a.log.Warnf("explain via coordinator failed: %v, falling back to direct model call", callErr)

	text, derr := a.direct(a.provider, instruction, payload)
	if derr != nil {
		writeJSON(w, http.StatusBadGateway, types.ToolCallResult{OK: false, Error: callErr.Error()})
		return
	}
	parsed, ok := normalize.ExtractObject(text)
	if !ok {
		writeJSON(w, http.StatusOK, types.ToolCallResult{OK: false, Error: tools.ParseErrorName, Raw: text})
		return
	}
	writeJSON(w, http.StatusOK, types.ToolCallResult{OK: true, Result: parsed})
}

type trackRequest struct {
	Results    []types.TestRecord `json:"testResults"`
	Difficulty string             `json:"difficulty,omitempty"`
	Subject    string             `json:"subject,omitempty"`
}

func (a *API) TrackProgress(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ToolCallResult{OK: false, Error: "invalid request body"})
		return
	}

	args := map[string]any{
		"userId":            chi.URLParam(r, "userID"),
		"testResults":       req.Results,
		"currentDifficulty": req.Difficulty,
		"subject":           req.Subject,
	}
	raw, err := a.coord.CallTool(r.Context(), tools.ToolTrackProgress, args)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, types.ToolCallResult{OK: false, Error: err.Error()})
		return
	}
	writeRaw(w, raw)
}

func (a *API) GetProgress(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{
		"userId":    chi.URLParam(r, "userID"),
		"timeframe": r.URL.Query().Get("timeframe"),
	}
	raw, err := a.coord.CallTool(r.Context(), tools.ToolProgressStats, args)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, types.ToolCallResult{OK: false, Error: err.Error()})
		return
	}
	writeRaw(w, raw)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeRaw forwards an already-encoded ToolCallResult from the coordinator
// without a decode/encode round trip.
func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}
