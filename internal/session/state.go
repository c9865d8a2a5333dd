package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/progress"
)

var (
	// ErrEmptyTopic is returned when a session is created without a topic.
	ErrEmptyTopic = errors.New("session topic is required")

	// ErrConceptNotFound is returned when an operation names a concept that
	// has no progress record.
	ErrConceptNotFound = errors.New("concept not found in session")
)

// State is the aggregate for one learner's session over a topic. It owns
// every concept record; records are created on first reference and never
// deleted.
type State struct {
	SessionID string
	Topic     string
	StartTime time.Time

	// Difficulty is the session-wide target difficulty.
	Difficulty progress.Difficulty

	concepts map[string]*progress.Concept
	order    []string // insertion order of concepts
	planned  []string
	current  string
}

// New creates a session state with a fresh UUID.
func New(topic string, difficulty progress.Difficulty) (*State, error) {
	return NewWithID(uuid.NewString(), topic, difficulty)
}

// NewWithID creates a session state with a caller-supplied session ID.
func NewWithID(sessionID, topic string, difficulty progress.Difficulty) (*State, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	return &State{
		SessionID:  sessionID,
		Topic:      topic,
		StartTime:  time.Now(),
		Difficulty: difficulty,
		concepts:   make(map[string]*progress.Concept),
	}, nil
}

// AddConcept inserts a progress record for name if none exists. It reports
// whether a record was created; an existing record is never replaced.
func (s *State) AddConcept(name string, difficulty progress.Difficulty) bool {
	if _, ok := s.concepts[name]; ok {
		return false
	}
	s.concepts[name] = progress.NewConcept(name, difficulty)
	s.order = append(s.order, name)
	return true
}

// SetCurrentConcept makes name the concept being worked on. A not-started
// concept is moved to in_progress.
func (s *State) SetCurrentConcept(name string) error {
	c, ok := s.concepts[name]
	if !ok {
		return fmt.Errorf("set current concept %q: %w", name, ErrConceptNotFound)
	}
	s.current = name
	c.Start()
	return nil
}

// CurrentConcept returns the current concept name, or "" if none is set.
func (s *State) CurrentConcept() string { return s.current }

// SetPlanned replaces the planned curriculum order.
func (s *State) SetPlanned(names []string) {
	s.planned = append([]string(nil), names...)
}

// Planned returns a copy of the planned curriculum order.
func (s *State) Planned() []string {
	return append([]string(nil), s.planned...)
}

// Concept returns the progress record for name, or nil if absent.
func (s *State) Concept(name string) *progress.Concept {
	return s.concepts[name]
}

// Concepts returns all records in insertion order.
func (s *State) Concepts() []*progress.Concept {
	out := make([]*progress.Concept, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.concepts[name])
	}
	return out
}

// ConceptCount returns the number of concept records.
func (s *State) ConceptCount() int { return len(s.concepts) }

// MarkConceptTaught records a teaching pass for name.
func (s *State) MarkConceptTaught(name string) error {
	c, ok := s.concepts[name]
	if !ok {
		return fmt.Errorf("mark taught %q: %w", name, ErrConceptNotFound)
	}
	c.MarkTaught()
	return nil
}

// MarkConceptQuizzed records a quiz score for name.
func (s *State) MarkConceptQuizzed(name string, score float64) error {
	c, ok := s.concepts[name]
	if !ok {
		return fmt.Errorf("mark quizzed %q: %w", name, ErrConceptNotFound)
	}
	return c.MarkQuizzed(score)
}

// UpdateConceptDifficulty sets the target difficulty for name.
func (s *State) UpdateConceptDifficulty(name string, level progress.Difficulty) error {
	c, ok := s.concepts[name]
	if !ok {
		return fmt.Errorf("update difficulty %q: %w", name, ErrConceptNotFound)
	}
	c.UpdateDifficulty(level)
	return nil
}

// UpdateOverallDifficulty sets the session-wide difficulty.
func (s *State) UpdateOverallDifficulty(level progress.Difficulty) {
	s.Difficulty = level
}
