package agent

import (
	"time"

	"github.com/abhisek/studybuddy/internal/content"
	"github.com/abhisek/studybuddy/internal/decision"
	"github.com/abhisek/studybuddy/internal/difficulty"
	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/retry"
	"github.com/abhisek/studybuddy/internal/session"
)

// ActionResult is the uniform outcome of executing one action. Errors and
// panics never escape Act; they are reported here.
type ActionResult struct {
	Action  decision.Kind `json:"action"`
	Success bool          `json:"success"`
	Result  any           `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// PlanResult is the result of plan_learning_path.
type PlanResult struct {
	Concepts []content.PlannedConcept `json:"concepts"`
}

// AddResult is the result of add_concept.
type AddResult struct {
	Concept string `json:"concept_name"`
	Created bool   `json:"created"`
}

// CurrentResult is the result of set_current_concept.
type CurrentResult struct {
	Concept string          `json:"concept_name"`
	Status  progress.Status `json:"status"`
}

// TeachResult is the result of teach_concept.
type TeachResult struct {
	Concept    string              `json:"concept_name"`
	Difficulty progress.Difficulty `json:"difficulty_level"`
	Lesson     string              `json:"lesson"`
}

// QuizOutcome is the result of generate_quiz. Evaluation is nil while the
// quiz waits for SubmitAnswers.
type QuizOutcome struct {
	Concept    string            `json:"concept_name"`
	Quiz       *evaluator.Quiz   `json:"quiz"`
	Evaluation *evaluator.Result `json:"evaluation,omitempty"`
	Status     progress.Status   `json:"status,omitempty"`
	Retry      *retry.Info       `json:"retry,omitempty"`
}

// Pending reports whether the quiz has not been answered yet.
func (q QuizOutcome) Pending() bool { return q.Evaluation == nil }

// QuizFailure is the result of a generate_quiz that produced no usable quiz.
// Raw is the start of the rejected model output.
type QuizFailure struct {
	Concept string `json:"concept_name"`
	Raw     string `json:"raw_output,omitempty"`
}

// AdaptResult is the result of adapt_difficulty.
type AdaptResult struct {
	difficulty.Result
	RetriesReset bool `json:"retries_reset"`
}

// CompleteResult is the result of session_complete.
type CompleteResult struct {
	Message string `json:"message"`
}

// StepRecord is one entry of the session history.
type StepRecord struct {
	Iteration int                 `json:"iteration"`
	Time      time.Time           `json:"time"`
	Action    decision.Action     `json:"action"`
	Result    ActionResult        `json:"result"`
	Before    session.Observation `json:"observation"`
}

// QuizStatus is the quiz-related progress of one concept.
type QuizStatus struct {
	Concept    string          `json:"concept_name"`
	QuizTaken  bool            `json:"quiz_taken"`
	Score      *float64        `json:"score"`
	Status     progress.Status `json:"status"`
	RetryCount int             `json:"retry_count"`
	QuizzedAt  *time.Time      `json:"quizzed_at,omitempty"`
}

// Summary describes a finished run.
type Summary struct {
	SessionID    string       `json:"session_id"`
	Topic        string       `json:"topic"`
	Iterations   int          `json:"iterations"`
	Taught       []string     `json:"concepts_taught"`
	Mastered     []string     `json:"concepts_mastered"`
	Progress     float64      `json:"progress_percentage"`
	AverageScore *float64     `json:"average_score"`
	StopReason   string       `json:"stop_reason"`
	History      []StepRecord `json:"history"`
}
