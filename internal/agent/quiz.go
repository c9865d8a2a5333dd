package agent

import (
	"errors"
	"fmt"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/retry"
)

// ErrNoPendingQuiz is returned by SubmitAnswers when no quiz awaits answers.
var ErrNoPendingQuiz = errors.New("no quiz is waiting for answers")

// PendingQuiz returns the generated quiz that awaits answers, or nil.
func (a *Agent) PendingQuiz() *evaluator.Quiz { return a.pendingQuiz }

// SubmitAnswers scores the pending quiz and folds the average score into the
// concept. A failing score with retry budget left flags the concept for
// re-teaching; any other score is recorded as a regular quiz result.
func (a *Agent) SubmitAnswers(answers []evaluator.Answer) (QuizOutcome, error) {
	if a.pendingQuiz == nil {
		return QuizOutcome{}, ErrNoPendingQuiz
	}
	quiz, name := a.pendingQuiz, a.pendingConcept

	eval := evaluator.Evaluate(*quiz, answers)
	out := QuizOutcome{Concept: name, Quiz: quiz, Evaluation: &eval}

	score, err := progress.NewScore(eval.AverageScore)
	if err != nil {
		return out, fmt.Errorf("score quiz for %q: %w", name, err)
	}

	mgr := retry.NewManager(a.state)
	if mgr.ShouldRetry(name, score) {
		info, err := mgr.MarkForRetry(name, eval.AverageScore)
		if err != nil {
			return out, err
		}
		out.Retry = &info
	} else if err := a.state.MarkConceptQuizzed(name, eval.AverageScore); err != nil {
		return out, err
	}

	a.pendingQuiz, a.pendingConcept = nil, ""
	out.Status = a.state.Concept(name).Status()
	return out, nil
}

// QuizStatus reports the quiz progress of a concept.
func (a *Agent) QuizStatus(name string) (QuizStatus, error) {
	c := a.state.Concept(name)
	if c == nil {
		return QuizStatus{}, fmt.Errorf("quiz status %q: %w", name, retry.ErrConceptNotFound)
	}
	st := QuizStatus{
		Concept:    name,
		QuizTaken:  c.QuizTaken(),
		Status:     c.Status(),
		RetryCount: c.RetryCount(),
		QuizzedAt:  c.QuizzedAt(),
	}
	if v, ok := c.Score().Value(); ok {
		st.Score = &v
	}
	return st, nil
}
