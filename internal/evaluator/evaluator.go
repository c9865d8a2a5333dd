package evaluator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Evaluate scores answers against quiz. The average is taken over every
// question in the quiz, so unanswered questions count as zero. Evaluate is
// deterministic and never mutates its inputs.
func Evaluate(quiz Quiz, answers []Answer) Result {
	byNumber := make(map[int]string, len(answers))
	for _, a := range answers {
		byNumber[a.QuestionNumber] = a.Answer
	}

	res := Result{
		TotalQuestions: len(quiz.Questions),
		Scores:         make([]QuestionScore, 0, len(quiz.Questions)),
	}
	var total float64
	for _, q := range quiz.Questions {
		answer := byNumber[q.Number]
		if answer == "" {
			res.Scores = append(res.Scores, QuestionScore{
				QuestionNumber: q.Number,
				Feedback:       FeedbackNoAnswer,
			})
			continue
		}
		res.QuestionsEvaluated++

		score := clamp(ScoreQuestion(q, answer))
		res.Scores = append(res.Scores, QuestionScore{
			QuestionNumber: q.Number,
			Score:          round2(score),
			IsCorrect:      score >= CorrectThreshold,
			Feedback:       Feedback(score),
		})
		total += score
	}

	var avg float64
	if res.TotalQuestions > 0 {
		avg = total / float64(res.TotalQuestions)
	}
	res.TotalScore = round2(total)
	res.AverageScore = round2(avg)
	res.OverallPercentage = round2(avg * 100)
	return res
}

// ScoreQuestion scores a single non-empty answer according to the
// question's type.
func ScoreQuestion(q Question, answer string) float64 {
	switch QuestionType(strings.ToLower(string(q.Type))) {
	case TypeMultipleChoice:
		return ScoreMultipleChoice(answer, q.CorrectAnswer, q.Options)
	case TypeShortAnswer:
		return ScoreShortAnswer(answer, q.CorrectAnswer)
	default:
		return ScoreExact(answer, q.CorrectAnswer)
	}
}

// EvaluateJSON decodes a quiz and an answer sheet and evaluates them.
// Malformed input produces a Result with Error set instead of a Go error.
func EvaluateJSON(rawQuiz, rawAnswers []byte) Result {
	var quiz Quiz
	if err := json.Unmarshal(rawQuiz, &quiz); err != nil {
		return errorResult(fmt.Errorf("quiz: %w", err))
	}
	var sheet AnswerSheet
	if err := json.Unmarshal(rawAnswers, &sheet); err != nil {
		return errorResult(fmt.Errorf("answers: %w", err))
	}
	return Evaluate(quiz, sheet.Answers)
}

func errorResult(err error) Result {
	return Result{
		Error:  "invalid JSON format: " + err.Error(),
		Scores: []QuestionScore{},
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
