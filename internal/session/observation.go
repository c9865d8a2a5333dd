package session

import "github.com/abhisek/studybuddy/internal/progress"

// Observation is a read-only view of the session used for decisions,
// journaling and display.
type Observation struct {
	SessionID            string              `json:"session_id"`
	Topic                string              `json:"topic"`
	CurrentConcept       string              `json:"current_concept,omitempty"`
	ConceptsPlanned      []string            `json:"concepts_planned"`
	ConceptsTaught       []string            `json:"concepts_taught"`
	ConceptsMastered     []string            `json:"concepts_mastered"`
	ConceptsNeedingRetry []string            `json:"concepts_needing_retry"`
	ProgressPercentage   float64             `json:"progress_percentage"`
	AverageScore         *float64            `json:"average_score"`
	OverallDifficulty    progress.Difficulty `json:"overall_difficulty"`
	Concepts             []progress.Snapshot `json:"concepts"`
}

// Observe captures the current derived metrics of the session.
func (s *State) Observe() Observation {
	obs := Observation{
		SessionID:            s.SessionID,
		Topic:                s.Topic,
		CurrentConcept:       s.current,
		ConceptsPlanned:      s.Planned(),
		ConceptsTaught:       s.TaughtConcepts(),
		ConceptsMastered:     s.MasteredConcepts(),
		ConceptsNeedingRetry: s.ConceptsNeedingRetry(),
		ProgressPercentage:   s.ProgressPercentage(),
		OverallDifficulty:    s.Difficulty,
	}
	if avg, ok := s.AverageScore(); ok {
		obs.AverageScore = &avg
	}
	for _, c := range s.Concepts() {
		obs.Concepts = append(obs.Concepts, c.Snapshot())
	}
	return obs
}
