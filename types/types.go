package types

import "time"

// Question is a single quiz question as produced by the generation tool.
type Question struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Category      string   `json:"category,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Points        int      `json:"points"`
}

// Test is the structurally guaranteed output of the generation tool:
// exactly the requested number of questions, sequential 1-based ids,
// points summing to 100.
type Test struct {
	Title       string     `json:"title"`
	Topics      []string   `json:"topics,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Questions   []Question `json:"questions"`
	TotalPoints int        `json:"totalPoints"`
}

// StudentAnswers maps a question id (as a JSON object key) to the
// student's free-text answer.
type StudentAnswers map[string]string

// QuestionResult is the graded outcome for one question.
type QuestionResult struct {
	QuestionID int     `json:"questionId"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Correct    bool    `json:"correct"`
	Feedback   string  `json:"feedback,omitempty"`
}

// GradingResult is the normalized output of the grading tool. OverallScore
// is always recomputed from the per-question scores, regardless of any
// summary number the model reported.
type GradingResult struct {
	Results      []QuestionResult `json:"results"`
	OverallScore float64          `json:"overallScore"`
	Summary      string           `json:"summary,omitempty"`
}

// GenerateRequest carries the arguments of the generate_jr_web_test tool.
type GenerateRequest struct {
	Topics       []string `json:"topics"`
	NumQuestions int      `json:"numQuestions"`
	Difficulty   string   `json:"difficulty,omitempty"`
	FocusAreas   []string `json:"focusAreas,omitempty"`
	Framework    string   `json:"framework,omitempty"`
}

// GradeRequest carries the arguments of the grade_web_test tool.
type GradeRequest struct {
	Test       Test           `json:"test"`
	Answers    StudentAnswers `json:"answers"`
	Strictness string         `json:"strictness,omitempty"`
}

// ToolCallResult is the uniform payload returned by every tool handler.
// Raw preserves unparseable model output for diagnostics.
type ToolCallResult struct {
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

// TestRecord is one completed test reported to track_learning_progress.
type TestRecord struct {
	Topic   string    `json:"topic"`
	Score   float64   `json:"score"`
	TakenAt time.Time `json:"takenAt,omitempty"`
}

// ProgressStats summarizes a user's recorded activity. The backing store
// is in-memory only; aggregates reset when the server restarts.
type ProgressStats struct {
	UserID            string   `json:"userId"`
	Subject           string   `json:"subject,omitempty"`
	TestsTaken        int      `json:"testsTaken"`
	AverageScore      float64  `json:"averageScore"`
	CurrentDifficulty string   `json:"currentDifficulty,omitempty"`
	WeakAreas         []string `json:"weakAreas,omitempty"`
	Timeframe         string   `json:"timeframe,omitempty"`
}
