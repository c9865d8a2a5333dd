// Package difficulty moves a concept's target difficulty one level up or
// down based on quiz performance.
package difficulty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/progress"
)

var (
	ErrNoMetrics     = errors.New("no performance metrics provided; at least one of quiz_score, retry_count or average_score is required")
	ErrInvalidMetric = errors.New("invalid performance metric")
	ErrUnknownLevel  = errors.New("invalid difficulty level")
)

// Adaptation thresholds.
const (
	LowScore       = 0.5
	HighScore      = 0.8
	GoodFirstScore = 0.7
	RetryLimit     = 3
)

// Metrics are the performance signals an adaptation is based on. Nil fields
// are absent; at least one must be present.
type Metrics struct {
	QuizScore    *float64 `json:"quiz_score,omitempty"`
	RetryCount   *int     `json:"retry_count,omitempty"`
	AverageScore *float64 `json:"average_score,omitempty"`
}

// Empty reports whether no metric is present.
func (m Metrics) Empty() bool {
	return m.QuizScore == nil && m.RetryCount == nil && m.AverageScore == nil
}

// Validate checks every present metric against its range.
func (m Metrics) Validate() error {
	if m.QuizScore != nil && !inUnit(*m.QuizScore) {
		return fmt.Errorf("%w: quiz_score %v must be between 0.0 and 1.0", ErrInvalidMetric, *m.QuizScore)
	}
	if m.RetryCount != nil && *m.RetryCount < 0 {
		return fmt.Errorf("%w: retry_count %d must be non-negative", ErrInvalidMetric, *m.RetryCount)
	}
	if m.AverageScore != nil && !inUnit(*m.AverageScore) {
		return fmt.Errorf("%w: average_score %v must be between 0.0 and 1.0", ErrInvalidMetric, *m.AverageScore)
	}
	return nil
}

// inUnit reports whether v lies in [0, 1]. NaN does not.
func inUnit(v float64) bool { return v >= 0 && v <= 1 }

// Result is the outcome of one adaptation.
type Result struct {
	ConceptName string              `json:"concept_name"`
	Old         progress.Difficulty `json:"old_difficulty"`
	New         progress.Difficulty `json:"new_difficulty"`
	Reason      string              `json:"reason"`
	Metrics     Metrics             `json:"metrics_analyzed"`
	Applied     bool                `json:"adaptation_applied"`
}

// Adapt decides the next difficulty for a concept. A decrease trigger wins
// over an increase trigger. Moves past either end of the scale are reported
// as maintained, not as errors.
func Adapt(concept string, current progress.Difficulty, m Metrics) (Result, error) {
	if !current.Valid() {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownLevel, current)
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if m.Empty() {
		return Result{}, ErrNoMetrics
	}

	down, up := triggers(m)
	next, reason := current, "Maintaining difficulty based on current performance metrics"
	switch {
	case len(down) > 0:
		if easier, ok := current.Easier(); ok {
			next, reason = easier, "Decreasing difficulty: "+strings.Join(down, ", ")
		} else {
			reason = fmt.Sprintf("Cannot decrease below %s: %s", current, strings.Join(down, ", "))
		}
	case len(up) > 0:
		if harder, ok := current.Harder(); ok {
			next, reason = harder, "Increasing difficulty: "+strings.Join(up, ", ")
		} else {
			reason = fmt.Sprintf("Cannot increase above %s: %s", current, strings.Join(up, ", "))
		}
	}

	parts := []string{reason}
	switch {
	case next > current:
		parts = append(parts, fmt.Sprintf("Difficulty increased from %s to %s", current, next))
	case next < current:
		parts = append(parts, fmt.Sprintf("Difficulty decreased from %s to %s", current, next))
	default:
		parts = append(parts, fmt.Sprintf("Difficulty maintained at %s", current))
	}

	return Result{
		ConceptName: concept,
		Old:         current,
		New:         next,
		Reason:      strings.Join(parts, ". ") + ".",
		Metrics:     m,
		Applied:     next != current,
	}, nil
}

// AdaptNamed is Adapt for a difficulty given by name.
func AdaptNamed(concept, level string, m Metrics) (Result, error) {
	current, err := progress.ParseDifficulty(level)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	return Adapt(concept, current, m)
}

func triggers(m Metrics) (down, up []string) {
	if m.QuizScore != nil {
		switch s := *m.QuizScore; {
		case s < LowScore:
			down = append(down, fmt.Sprintf("Low quiz score (%.2f < %.1f)", s, LowScore))
		case s >= HighScore:
			up = append(up, fmt.Sprintf("High quiz score (%.2f >= %.1f)", s, HighScore))
		}
	}
	if m.AverageScore != nil {
		switch s := *m.AverageScore; {
		case s < LowScore:
			down = append(down, fmt.Sprintf("Low average score (%.2f < %.1f)", s, LowScore))
		case s >= HighScore:
			up = append(up, fmt.Sprintf("High average score (%.2f >= %.1f)", s, HighScore))
		}
	}
	if m.RetryCount != nil {
		switch n := *m.RetryCount; {
		case n >= RetryLimit:
			down = append(down, fmt.Sprintf("High retry count (%d >= %d)", n, RetryLimit))
		case n == 0 && m.QuizScore != nil && *m.QuizScore >= GoodFirstScore:
			up = append(up, fmt.Sprintf("No retries needed and good performance (score %.2f)", *m.QuizScore))
		}
	}
	return down, up
}

// FromConcept builds metrics from a concept's progress. The concept's score
// stands in for both the quiz score and the average score.
func FromConcept(c *progress.Concept) Metrics {
	retries := c.RetryCount()
	m := Metrics{RetryCount: &retries}
	if v, ok := c.Score().Value(); ok {
		quiz, avg := v, v
		m.QuizScore, m.AverageScore = &quiz, &avg
	}
	return m
}
