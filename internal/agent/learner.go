package agent

import (
	"context"
	"errors"

	"github.com/abhisek/studybuddy/internal/evaluator"
)

// ErrLearnerQuit is returned by a Learner that wants the session to end.
var ErrLearnerQuit = errors.New("learner ended the session")

// Learner is the person (or test double) on the other side of the session.
// Both methods block until the learner is done.
type Learner interface {
	// Study presents a lesson.
	Study(ctx context.Context, concept, lesson string) error

	// AnswerQuiz collects one answer per question.
	AnswerQuiz(ctx context.Context, quiz *evaluator.Quiz) ([]evaluator.Answer, error)
}
