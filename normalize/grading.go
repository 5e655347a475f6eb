package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/quizmcp/types"
)

// NoAnswerFeedback is the synthesized feedback for a blank student answer.
const NoAnswerFeedback = "No answer provided."

// Grading normalizes the grading tool's output against the original test.
// Model results are matched to questions by id, falling back to position;
// a question with a blank answer always gets a zero-score synthesized
// result. OverallScore is recomputed from the summed points and overrides
// whatever aggregate the model reported.
func Grading(parsed map[string]any, test types.Test, answers types.StudentAnswers) types.GradingResult {
	var model types.GradingResult
	decodeInto(parsed, &model)

	byID := make(map[int]types.QuestionResult, len(model.Results))
	for _, r := range model.Results {
		if _, seen := byID[r.QuestionID]; !seen {
			byID[r.QuestionID] = r
		}
	}

	out := types.GradingResult{
		Results: make([]types.QuestionResult, 0, len(test.Questions)),
		Summary: model.Summary,
	}

	var scoreSum, maxSum float64
	for i, q := range test.Questions {
		maxScore := float64(q.Points)

		r, graded := byID[q.ID]
		if !graded && i < len(model.Results) {
			// positional fallback for models that renumber questions
			r = model.Results[i]
			graded = true
		}

		switch {
		case strings.TrimSpace(answers[strconv.Itoa(q.ID)]) == "":
			r = types.QuestionResult{Score: 0, Correct: false, Feedback: NoAnswerFeedback}
		case !graded:
			r = types.QuestionResult{Score: 0, Correct: false, Feedback: "The grader returned no result for this question."}
		}

		r.QuestionID = q.ID
		r.MaxScore = maxScore
		if r.Score < 0 {
			r.Score = 0
		}
		if r.Score > maxScore {
			r.Score = maxScore
		}

		out.Results = append(out.Results, r)
		scoreSum += r.Score
		maxSum += maxScore
	}

	if maxSum > 0 {
		out.OverallScore = round2(100 * scoreSum / maxSum)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
