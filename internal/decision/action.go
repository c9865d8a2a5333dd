package decision

import (
	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/retry"
)

// Kind names the action the controller should perform next.
type Kind string

const (
	KindPlanLearningPath  Kind = "plan_learning_path"
	KindAddConcept        Kind = "add_concept"
	KindSetCurrentConcept Kind = "set_current_concept"
	KindTeachConcept      Kind = "teach_concept"
	KindGenerateQuiz      Kind = "generate_quiz"
	KindAdaptDifficulty   Kind = "adapt_difficulty"
	KindSessionComplete   Kind = "session_complete"
)

// Terminal reports whether the action ends the session.
func (k Kind) Terminal() bool { return k == KindSessionComplete }

// Action is one decision. Concept is set for every concept-scoped kind;
// exactly one of Plan, Teach and Quiz is set for the generator-backed kinds.
type Action struct {
	Kind    Kind   `json:"action"`
	Reason  string `json:"reason"`
	Rule    string `json:"rule"`
	Concept string `json:"concept_name,omitempty"`

	// Difficulty is the level for add_concept.
	Difficulty progress.Difficulty `json:"difficulty_level"`

	Plan  *PlanArgs  `json:"plan,omitempty"`
	Teach *TeachArgs `json:"teach,omitempty"`
	Quiz  *QuizArgs  `json:"quiz,omitempty"`
}

// PlanArgs is the request for the learning-path planner.
type PlanArgs struct {
	Topic       string              `json:"topic"`
	Difficulty  progress.Difficulty `json:"difficulty_level"`
	MaxConcepts int                 `json:"max_concepts"`
}

// TeachArgs is the request for a concept lesson.
type TeachArgs struct {
	Concept    string              `json:"concept_name"`
	Difficulty progress.Difficulty `json:"difficulty_level"`
	Context    string              `json:"context,omitempty"`

	// RetryAttempt and Strategy are set when re-teaching a concept flagged
	// for retry.
	RetryAttempt int                `json:"retry_attempt,omitempty"`
	Strategy     retry.StrategyName `json:"alternative_strategy,omitempty"`
}

// QuizArgs is the request for the quiz generator.
type QuizArgs struct {
	Concept       string                   `json:"concept_name"`
	Difficulty    progress.Difficulty      `json:"difficulty_level"`
	NumQuestions  int                      `json:"num_questions"`
	QuestionTypes []evaluator.QuestionType `json:"question_types"`
}
