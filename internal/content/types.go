package content

import (
	"context"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
)

// Service produces the curriculum, lessons and quizzes for a session.
// Implementations are non-deterministic; every failure is returned as an
// error and never replaced with fabricated content.
type Service interface {
	// Plan breaks a topic into an ordered list of concepts.
	Plan(ctx context.Context, req PlanRequest) ([]PlannedConcept, error)

	// Teach returns an explanation of a concept at the requested level.
	Teach(ctx context.Context, req TeachRequest) (string, error)

	// Quiz generates a quiz with an answer key for a concept.
	Quiz(ctx context.Context, req QuizRequest) (*evaluator.Quiz, error)
}

// PlannedConcept is one entry of a learning path.
type PlannedConcept struct {
	Name       string              `json:"concept_name" validate:"required"`
	Difficulty progress.Difficulty `json:"difficulty"`
	Order      int                 `json:"order" validate:"min=1"`
}

// PlanRequest asks for a learning path over a topic.
type PlanRequest struct {
	Topic       string
	Difficulty  progress.Difficulty
	MaxConcepts int
}

// TeachRequest asks for a lesson on one concept. Context carries what the
// learner already knows or, when re-teaching, the retry strategy notes.
type TeachRequest struct {
	Concept    string
	Difficulty progress.Difficulty
	Context    string
}

// QuizRequest asks for a quiz on one concept.
type QuizRequest struct {
	Concept       string
	Difficulty    progress.Difficulty
	NumQuestions  int
	QuestionTypes []evaluator.QuestionType
}
