package session

import "github.com/abhisek/studybuddy/internal/progress"

// TaughtConcepts returns concepts whose status is taught, quizzed or mastered.
func (s *State) TaughtConcepts() []string {
	return s.namesWhere(func(c *progress.Concept) bool { return c.Status().IsTaught() })
}

// MasteredConcepts returns concepts in the mastered state.
func (s *State) MasteredConcepts() []string {
	return s.namesWhere(func(c *progress.Concept) bool { return c.Status() == progress.StatusMastered })
}

// ConceptsNeedingRetry returns concepts flagged for re-teaching, in insertion order.
func (s *State) ConceptsNeedingRetry() []string {
	return s.namesWhere(func(c *progress.Concept) bool { return c.Status() == progress.StatusNeedsRetry })
}

// ProgressPercentage returns mastered / total as a ratio in [0, 1]; 0 when
// there are no concepts.
func (s *State) ProgressPercentage() float64 {
	if len(s.concepts) == 0 {
		return 0.0
	}
	return float64(len(s.MasteredConcepts())) / float64(len(s.concepts))
}

// AverageScore returns the mean of all recorded scores. The second return
// value is false when no concept has been quizzed.
func (s *State) AverageScore() (float64, bool) {
	var sum float64
	var n int
	for _, c := range s.Concepts() {
		if v, ok := c.Score().Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// NextUntaughtConcept returns the first planned concept that is absent or not
// mastered, falling back to unmastered concepts outside the plan in insertion
// order. The second return value is false when everything is mastered.
func (s *State) NextUntaughtConcept() (string, bool) {
	for _, name := range s.planned {
		c := s.concepts[name]
		if c == nil || c.Status() != progress.StatusMastered {
			return name, true
		}
	}
	for _, c := range s.Concepts() {
		if c.Status() != progress.StatusMastered {
			return c.Name(), true
		}
	}
	return "", false
}

func (s *State) namesWhere(pred func(*progress.Concept) bool) []string {
	var out []string
	for _, c := range s.Concepts() {
		if pred(c) {
			out = append(out, c.Name())
		}
	}
	return out
}
