package retry

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/progress"
)

// StrategyName identifies a re-teaching approach.
type StrategyName string

const (
	StrategySimplify    StrategyName = "simplify_explanation"
	StrategyAlternative StrategyName = "alternative_approach"
	StrategyAdapt       StrategyName = "adapt_difficulty"
)

// Strategy is the plan for the next re-teaching attempt of a concept.
type Strategy struct {
	ConceptName          string              `json:"concept_name"`
	Name                 StrategyName        `json:"strategy"`
	Approach             string              `json:"approach"`
	Reason               string              `json:"reason,omitempty"`
	RetryCount           int                 `json:"retry_count"`
	DifficultyAdjustment string              `json:"difficulty_adjustment,omitempty"`
	CurrentDifficulty    progress.Difficulty `json:"current_difficulty"`
	CurrentScore         float64             `json:"current_score"`
	ContextNotes         []string            `json:"context_notes,omitempty"`
}

type ladderStep struct {
	name       StrategyName
	approach   string
	adjustment string
}

// ladder is indexed by retry count minus one.
var ladder = []ladderStep{
	{StrategySimplify, "Use simpler language, more examples, analogies", ""},
	{StrategyAlternative, "Try different teaching method, visual examples, step-by-step breakdown", "consider_decreasing"},
	{StrategyAdapt, "Decrease difficulty level before final retry", "decrease"},
}

// Strategy returns the re-teaching strategy for a concept. The result depends
// only on the concept's retry count and score.
func (m *Manager) Strategy(name string) (Strategy, error) {
	c := m.state.Concept(name)
	if c == nil {
		return Strategy{}, fmt.Errorf("retry strategy %q: %w", name, ErrConceptNotFound)
	}
	return StrategyFor(name, c.RetryCount(), c.Score(), c.Difficulty()), nil
}

// StrategyFor derives a strategy from raw progress values. An unscored
// concept is treated as having scored zero.
func StrategyFor(name string, retryCount int, score progress.Score, level progress.Difficulty) Strategy {
	s := Strategy{
		ConceptName:       name,
		RetryCount:        retryCount,
		CurrentDifficulty: level,
		CurrentScore:      score.Or(0),
	}

	if retryCount >= MaxRetries {
		last := ladder[len(ladder)-1]
		s.Name = last.name
		s.Approach = last.approach
		s.DifficultyAdjustment = last.adjustment
		s.Reason = fmt.Sprintf("Max retries exceeded (%d >= %d)", retryCount, MaxRetries)
		return s
	}

	step := ladder[0]
	if retryCount > 0 {
		step = ladder[min(retryCount-1, len(ladder)-1)]
	}
	s.Name = step.name
	s.Approach = step.approach
	s.DifficultyAdjustment = step.adjustment

	switch {
	case s.CurrentScore < 0.4:
		s.ContextNotes = append(s.ContextNotes, "Very low score, need fundamental explanation")
	case s.CurrentScore < 0.5:
		s.ContextNotes = append(s.ContextNotes, "Low score, focus on basics")
	default:
		s.ContextNotes = append(s.ContextNotes, "Moderate score, clarify specific misunderstandings")
	}
	if retryCount > 1 {
		s.ContextNotes = append(s.ContextNotes, fmt.Sprintf("Previous attempts (%d) were unsuccessful", retryCount))
	}
	return s
}

// Context renders the strategy as a single instruction for the teaching prompt.
func (s Strategy) Context() string {
	parts := []string{
		fmt.Sprintf("Re-teaching attempt %d", s.RetryCount),
		"Strategy: " + string(s.Name),
		"Approach: " + s.Approach,
	}
	parts = append(parts, s.ContextNotes...)
	parts = append(parts, fmt.Sprintf("Previous score: %.2f", s.CurrentScore))
	return strings.Join(parts, ". ") + "."
}

// ReteachingContext returns the instruction string for re-teaching a
// concept. Unknown concepts get a generic instruction.
func (m *Manager) ReteachingContext(name string) string {
	s, err := m.Strategy(name)
	if err != nil {
		return "Re-teaching concept: " + name
	}
	return s.Context()
}
