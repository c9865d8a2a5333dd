package progress

import (
	"errors"
	"fmt"
)

// ErrScoreOutOfRange is returned when a score falls outside [0, 1].
var ErrScoreOutOfRange = errors.New("score must be between 0.0 and 1.0")

// Score is either "not yet quizzed" or a quiz score in [0, 1].
// The zero value is the unscored state.
type Score struct {
	value float64
	set   bool
}

// NoScore returns the unscored state.
func NoScore() Score { return Score{} }

// NewScore returns a scored value, validating the range.
func NewScore(v float64) (Score, error) {
	if !(v >= 0 && v <= 1) { // rejects NaN
		return Score{}, fmt.Errorf("%w: got %.4f", ErrScoreOutOfRange, v)
	}
	return Score{value: v, set: true}, nil
}

// Value returns the score and whether one has been recorded.
func (s Score) Value() (float64, bool) {
	return s.value, s.set
}

// IsSet reports whether a quiz score has been recorded.
func (s Score) IsSet() bool { return s.set }

// Or returns the score value, or def when unscored.
func (s Score) Or(def float64) float64 {
	if !s.set {
		return def
	}
	return s.value
}

func (s Score) String() string {
	if !s.set {
		return "none"
	}
	return fmt.Sprintf("%.2f", s.value)
}
