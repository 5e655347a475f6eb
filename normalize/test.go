package normalize

import (
	"fmt"
	"strings"

	"github.com/quizmcp/types"
)

const defaultNumQuestions = 5

// Test forces the generation tool's output into a structurally valid test
// regardless of what the model returned: exactly the requested number of
// questions (padding with placeholders, truncating extras), sequential
// 1-based ids, and point values summing to 100. parsed may be nil when the
// model's output was unrecoverable; the caller still receives a valid test.
func Test(parsed map[string]any, req types.GenerateRequest) types.Test {
	var t types.Test
	decodeInto(parsed, &t)

	n := req.NumQuestions
	if n <= 0 {
		n = defaultNumQuestions
	}

	if len(t.Questions) > n {
		t.Questions = t.Questions[:n]
	}
	for len(t.Questions) < n {
		t.Questions = append(t.Questions, placeholderQuestion(len(t.Questions)+1, req))
	}

	for i := range t.Questions {
		q := &t.Questions[i]
		q.ID = i + 1
		if q.Type == "" {
			q.Type = "short-answer"
		}
		if q.Difficulty == "" {
			q.Difficulty = req.Difficulty
		}
	}

	// The model's point values survive only when they already distribute
	// 100 points over the final question set. Padding, truncation, or a
	// mispriced set all invalidate them, and a partial redistribution
	// would break the 100-point total, so the even split replaces every
	// value at once.
	sum := 0
	for _, q := range t.Questions {
		if q.Points <= 0 {
			sum = -1
			break
		}
		sum += q.Points
	}
	if sum != 100 {
		even := 100 / n
		remainder := 100 % n
		for i := range t.Questions {
			t.Questions[i].Points = even
			if i == 0 {
				t.Questions[i].Points += remainder
			}
		}
	}
	t.TotalPoints = 100

	if t.Title == "" {
		t.Title = titleFor(req)
	}
	if len(t.Topics) == 0 {
		t.Topics = req.Topics
	}
	if t.Difficulty == "" {
		t.Difficulty = req.Difficulty
	}
	return t
}

func placeholderQuestion(id int, req types.GenerateRequest) types.Question {
	topic := "web development"
	if len(req.Topics) > 0 {
		topic = req.Topics[(id-1)%len(req.Topics)]
	}
	return types.Question{
		ID:         id,
		Type:       "short-answer",
		Category:   topic,
		Difficulty: req.Difficulty,
		Question:   fmt.Sprintf("Describe one important concept in %s and explain when you would use it.", topic),
	}
}

func titleFor(req types.GenerateRequest) string {
	if len(req.Topics) == 0 {
		return "Junior Web Development Quiz"
	}
	return fmt.Sprintf("Junior Web Development Quiz: %s", strings.Join(req.Topics, ", "))
}
