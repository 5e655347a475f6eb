package tools

import (
	"fmt"
	"strings"

	"github.com/quizmcp/types"
)

// Prompt builders. Each one asks the model for a bare JSON object; the
// normalize package cleans up whatever actually comes back.

func GenerateTestPrompt(req types.GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a web development instructor. Create a quiz with exactly %d questions for a junior developer.\n", req.NumQuestions)
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s.\n", strings.Join(req.Topics, ", "))
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s.\n", req.Difficulty)
	}
	if len(req.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Focus areas: %s.\n", strings.Join(req.FocusAreas, ", "))
	}
	if req.Framework != "" {
		fmt.Fprintf(&b, "Frame questions around %s where it fits.\n", req.Framework)
	}
	b.WriteString(`Respond with only a JSON object of the shape:
{"title": string, "questions": [{"id": int, "type": "multiple-choice"|"short-answer"|"code", "category": string, "question": string, "options": [string], "correctAnswer": string, "points": int}]}
Points must sum to 100.`)
	return b.String()
}

func GradeTestPrompt(req types.GradeRequest) string {
	var b strings.Builder
	b.WriteString("You are grading a junior web development quiz. For each question, score the student's answer out of the question's points and say whether it is correct.\n")
	if req.Strictness != "" {
		fmt.Fprintf(&b, "Grading strictness: %s.\n", req.Strictness)
	}
	b.WriteString("Questions:\n")
	for _, q := range req.Test.Questions {
		fmt.Fprintf(&b, "  %d. (%d points) %s\n", q.ID, q.Points, q.Question)
		if q.CorrectAnswer != "" {
			fmt.Fprintf(&b, "     expected: %s\n", q.CorrectAnswer)
		}
		fmt.Fprintf(&b, "     student answer: %s\n", req.Answers[fmt.Sprint(q.ID)])
	}
	b.WriteString(`Respond with only a JSON object of the shape:
{"results": [{"questionId": int, "score": number, "correct": bool, "feedback": string}], "summary": string}`)
	return b.String()
}

func ExplainConceptPrompt(question, studentAnswer, expectedAnswer, context string) string {
	var b strings.Builder
	b.WriteString("Explain the web development concept behind this quiz question to a junior developer.\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	if studentAnswer != "" {
		fmt.Fprintf(&b, "The student answered: %s\n", studentAnswer)
	}
	if expectedAnswer != "" {
		fmt.Fprintf(&b, "The expected answer: %s\n", expectedAnswer)
	}
	if context != "" {
		fmt.Fprintf(&b, "Context: %s\n", context)
	}
	b.WriteString(`Respond with only a JSON object of the shape:
{"explanation": string, "keyPoints": [string], "example": string}`)
	return b.String()
}

func ExplainWrongPrompt(question, studentAnswer, correctAnswer, category, difficulty, context string) string {
	var b strings.Builder
	b.WriteString("A junior developer answered a quiz question incorrectly. Explain what went wrong, kindly and concretely.\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Their answer: %s\n", studentAnswer)
	if correctAnswer != "" {
		fmt.Fprintf(&b, "Correct answer: %s\n", correctAnswer)
	}
	if category != "" {
		fmt.Fprintf(&b, "Category: %s\n", category)
	}
	if difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	}
	if context != "" {
		fmt.Fprintf(&b, "Context: %s\n", context)
	}
	b.WriteString(`Respond with only a JSON object of the shape:
{"explanation": string, "misconception": string, "correctApproach": string}`)
	return b.String()
}
