package progress

import (
	"fmt"
	"time"
)

// Score thresholds applied when a quiz result is recorded.
const (
	MasteryThreshold = 0.8
	PassThreshold    = 0.6
)

// Concept holds all progress data for a single concept within a session.
// Status changes only through the methods below so that the score/status
// coupling holds.
type Concept struct {
	name       string
	status     Status
	quizTaken  bool
	score      Score
	retryCount int
	difficulty Difficulty
	taughtAt   *time.Time
	quizzedAt  *time.Time
}

// NewConcept creates a not-started concept at the given difficulty.
func NewConcept(name string, difficulty Difficulty) *Concept {
	return &Concept{
		name:       name,
		status:     StatusNotStarted,
		difficulty: difficulty,
	}
}

func (c *Concept) Name() string           { return c.name }
func (c *Concept) Status() Status         { return c.status }
func (c *Concept) QuizTaken() bool        { return c.quizTaken }
func (c *Concept) Score() Score           { return c.score }
func (c *Concept) RetryCount() int        { return c.retryCount }
func (c *Concept) Difficulty() Difficulty { return c.difficulty }
func (c *Concept) TaughtAt() *time.Time   { return c.taughtAt }
func (c *Concept) QuizzedAt() *time.Time  { return c.quizzedAt }

func (c *Concept) setStatus(to Status) {
	if !CanTransition(c.status, to) {
		panic(fmt.Sprintf("progress: illegal transition %s -> %s for %q", c.status, to, c.name))
	}
	c.status = to
}

// MarkTaught records a teaching pass. Re-teaching is allowed from any status.
func (c *Concept) MarkTaught() {
	now := time.Now()
	c.setStatus(StatusTaught)
	c.taughtAt = &now
}

// MarkQuizzed records a quiz result and derives the new status:
// mastered at >= 0.8, quizzed at >= 0.6, otherwise needs_retry with one more
// retry counted. Out-of-range scores are rejected without mutation.
func (c *Concept) MarkQuizzed(score float64) error {
	s, err := NewScore(score)
	if err != nil {
		return err
	}
	c.recordQuiz(s)
	switch {
	case score >= MasteryThreshold:
		c.setStatus(StatusMastered)
	case score >= PassThreshold:
		c.setStatus(StatusQuizzed)
	default:
		c.IncrementRetry()
	}
	return nil
}

// RecordFailedQuiz stores a below-pass score and counts a retry in one step.
// Callers are responsible for checking retry eligibility first.
func (c *Concept) RecordFailedQuiz(score float64) error {
	s, err := NewScore(score)
	if err != nil {
		return err
	}
	c.recordQuiz(s)
	c.IncrementRetry()
	return nil
}

func (c *Concept) recordQuiz(s Score) {
	now := time.Now()
	c.quizTaken = true
	c.score = s
	c.quizzedAt = &now
}

// IncrementRetry counts a retry and flags the concept for re-teaching.
func (c *Concept) IncrementRetry() {
	c.retryCount++
	c.setStatus(StatusNeedsRetry)
}

// ResetRetries gives the concept a fresh retry budget. Status is untouched.
func (c *Concept) ResetRetries() {
	c.retryCount = 0
}

// UpdateDifficulty sets the target difficulty. Status is untouched.
func (c *Concept) UpdateDifficulty(level Difficulty) {
	c.difficulty = level
}

// Start moves a not-started concept to in_progress. It reports whether the
// status changed.
func (c *Concept) Start() bool {
	if c.status != StatusNotStarted {
		return false
	}
	c.setStatus(StatusInProgress)
	return true
}

// Snapshot is a read-only, serializable copy of a concept's progress.
type Snapshot struct {
	Name       string     `json:"concept_name"`
	Status     Status     `json:"status"`
	QuizTaken  bool       `json:"quiz_taken"`
	Score      *float64   `json:"score"`
	RetryCount int        `json:"retry_count"`
	Difficulty Difficulty `json:"difficulty_level"`
	TaughtAt   *time.Time `json:"taught_at,omitempty"`
	QuizzedAt  *time.Time `json:"quizzed_at,omitempty"`
}

// Snapshot returns a copy of the concept's current progress.
func (c *Concept) Snapshot() Snapshot {
	snap := Snapshot{
		Name:       c.name,
		Status:     c.status,
		QuizTaken:  c.quizTaken,
		RetryCount: c.retryCount,
		Difficulty: c.difficulty,
		TaughtAt:   c.taughtAt,
		QuizzedAt:  c.quizzedAt,
	}
	if v, ok := c.score.Value(); ok {
		snap.Score = &v
	}
	return snap
}
