package tools

import "encoding/json"

var toolDescriptions = map[string]string{
	ToolGenerateTest:   "Generate a junior web development quiz on the given topics",
	ToolGradeTest:      "Grade a completed quiz against the student's answers",
	ToolExplainConcept: "Explain a web development concept behind a quiz question",
	ToolExplainWrong:   "Explain why a student's answer to a question was wrong",
	ToolTrackProgress:  "Record completed test results for a user",
	ToolProgressStats:  "Fetch a user's aggregated learning progress",
}

var toolSchemas = map[string]json.RawMessage{
	ToolGenerateTest: json.RawMessage(`{
		"type": "object",
		"properties": {
			"topics": {"type": "array", "items": {"type": "string"}},
			"numQuestions": {"type": "integer", "minimum": 1, "maximum": 50},
			"difficulty": {"type": "string"},
			"focusAreas": {"type": "array", "items": {"type": "string"}},
			"framework": {"type": "string"}
		},
		"required": ["topics", "numQuestions"]
	}`),
	ToolGradeTest: json.RawMessage(`{
		"type": "object",
		"properties": {
			"test": {"type": "object"},
			"answers": {"type": "object"},
			"strictness": {"type": "string"}
		},
		"required": ["test", "answers"]
	}`),
	ToolExplainConcept: json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {"type": "string"},
			"studentAnswer": {"type": "string"},
			"expectedAnswer": {"type": "string"},
			"context": {"type": "string"}
		},
		"required": ["question"]
	}`),
	ToolExplainWrong: json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {"type": "string"},
			"studentAnswer": {"type": "string"},
			"correctAnswer": {"type": "string"},
			"category": {"type": "string"},
			"difficulty": {"type": "string"},
			"context": {"type": "string"}
		},
		"required": ["question", "studentAnswer"]
	}`),
	ToolTrackProgress: json.RawMessage(`{
		"type": "object",
		"properties": {
			"userId": {"type": "string"},
			"testResults": {"type": "array", "items": {"type": "object"}},
			"currentDifficulty": {"type": "string"},
			"subject": {"type": "string"}
		},
		"required": ["userId", "testResults"]
	}`),
	ToolProgressStats: json.RawMessage(`{
		"type": "object",
		"properties": {
			"userId": {"type": "string"},
			"timeframe": {"type": "string", "enum": ["week", "month", "all", ""]}
		},
		"required": ["userId"]
	}`),
}
