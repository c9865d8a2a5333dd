// Package retry decides when a concept is re-taught after a low quiz score,
// which teaching strategy the next attempt uses, and when retries give way to
// difficulty adaptation.
package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/session"
)

const (
	MaxRetries              = 3
	LowScoreThreshold       = 0.6
	ExcellentScoreThreshold = 0.8
)

var (
	ErrConceptNotFound     = errors.New("concept not found in state")
	ErrScoreAboveThreshold = errors.New("score is above retry threshold")
	ErrRetriesExhausted    = errors.New("max retries exceeded")
)

// Manager applies retry policy to the concepts of one session.
type Manager struct {
	state *session.State
}

// NewManager returns a Manager bound to state.
func NewManager(state *session.State) *Manager {
	return &Manager{state: state}
}

// ShouldRetry reports whether the concept should be re-taught. When score is
// unset the concept's stored score is used. A concept that was never scored
// is not retried.
func (m *Manager) ShouldRetry(name string, score progress.Score) bool {
	c := m.state.Concept(name)
	if c == nil {
		return false
	}
	if !score.IsSet() {
		score = c.Score()
	}
	v, ok := score.Value()
	if !ok {
		return false
	}
	return v < LowScoreThreshold && c.RetryCount() < MaxRetries
}

// CanRetry reports whether the concept still has retry budget left.
func (m *Manager) CanRetry(name string) bool {
	c := m.state.Concept(name)
	return c != nil && c.RetryCount() < MaxRetries
}

// Info describes the retry state of a concept after MarkForRetry.
type Info struct {
	ConceptName string          `json:"concept_name"`
	RetryCount  int             `json:"retry_count"`
	MaxRetries  int             `json:"max_retries"`
	CanRetry    bool            `json:"can_retry"`
	QuizScore   float64         `json:"quiz_score"`
	Status      progress.Status `json:"status"`
	QuizzedAt   time.Time       `json:"quizzed_at"`
}

// MarkForRetry records a failing quiz score and counts one retry. It is
// rejected without mutation when the score passes or the retry budget is
// spent.
func (m *Manager) MarkForRetry(name string, score float64) (Info, error) {
	c := m.state.Concept(name)
	if c == nil {
		return Info{}, fmt.Errorf("mark for retry %q: %w", name, ErrConceptNotFound)
	}
	if score >= LowScoreThreshold {
		return Info{}, fmt.Errorf("score %.2f, threshold %.1f: %w", score, LowScoreThreshold, ErrScoreAboveThreshold)
	}
	if c.RetryCount() >= MaxRetries {
		return Info{}, fmt.Errorf("%q has %d of %d retries: %w", name, c.RetryCount(), MaxRetries, ErrRetriesExhausted)
	}
	if err := c.RecordFailedQuiz(score); err != nil {
		return Info{}, fmt.Errorf("mark for retry %q: %w", name, err)
	}

	info := Info{
		ConceptName: name,
		RetryCount:  c.RetryCount(),
		MaxRetries:  MaxRetries,
		CanRetry:    c.RetryCount() < MaxRetries,
		QuizScore:   score,
		Status:      c.Status(),
	}
	if at := c.QuizzedAt(); at != nil {
		info.QuizzedAt = *at
	}
	return info, nil
}

// ShouldAdaptDifficulty reports whether the retry budget is spent, the point
// where difficulty is adapted instead of another retry.
func (m *Manager) ShouldAdaptDifficulty(name string) bool {
	c := m.state.Concept(name)
	return c != nil && c.RetryCount() >= MaxRetries
}

// ConceptsExceedingRetries returns every concept that has used up its retry
// budget, in insertion order.
func (m *Manager) ConceptsExceedingRetries() []string {
	var out []string
	for _, c := range m.state.Concepts() {
		if c.RetryCount() >= MaxRetries {
			out = append(out, c.Name())
		}
	}
	return out
}

// ResetRetry zeroes the retry count of a concept. It is used after a
// difficulty adaptation to give the concept a fresh budget.
func (m *Manager) ResetRetry(name string) error {
	c := m.state.Concept(name)
	if c == nil {
		return fmt.Errorf("reset retry %q: %w", name, ErrConceptNotFound)
	}
	c.ResetRetries()
	return nil
}
