// Package decision holds the policy that picks the next tutoring action from
// the current session state. Rules are evaluated in a fixed priority order
// and the first match wins.
package decision

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/retry"
	"github.com/abhisek/studybuddy/internal/session"
)

// Defaults are the fixed arguments attached to generator-backed actions.
type Defaults struct {
	MaxConcepts   int
	NumQuestions  int
	QuestionTypes []evaluator.QuestionType
}

// DefaultDefaults returns the standard action arguments.
func DefaultDefaults() Defaults {
	return Defaults{
		MaxConcepts:   10,
		NumQuestions:  3,
		QuestionTypes: []evaluator.QuestionType{evaluator.TypeMultipleChoice, evaluator.TypeShortAnswer},
	}
}

// rule inspects the state and reports whether it produced an action.
type rule struct {
	name  string
	apply func(e *Engine, s *session.State) (Action, bool)
}

// rules is the priority order of the policy.
var rules = []rule{
	{"plan", (*Engine).planRule},
	{"add_first_planned", (*Engine).addFirstPlannedRule},
	{"retry", (*Engine).retryRule},
	{"select_current", (*Engine).selectCurrentRule},
	{"add_current", (*Engine).addCurrentRule},
	{"current_status", (*Engine).currentStatusRule},
	{"fallback", (*Engine).fallbackRule},
}

// Engine is a stateless decision policy. It reads the state it is given and
// never mutates it.
type Engine struct {
	defaults Defaults
}

// New returns an Engine using d for action arguments. Zero fields fall back
// to DefaultDefaults.
func New(d Defaults) *Engine {
	std := DefaultDefaults()
	if d.MaxConcepts <= 0 {
		d.MaxConcepts = std.MaxConcepts
	}
	if d.NumQuestions <= 0 {
		d.NumQuestions = std.NumQuestions
	}
	if len(d.QuestionTypes) == 0 {
		d.QuestionTypes = std.QuestionTypes
	}
	return &Engine{defaults: d}
}

// Decide returns exactly one action for the state.
func (e *Engine) Decide(s *session.State) Action {
	for _, r := range rules {
		if a, ok := r.apply(e, s); ok {
			a.Rule = r.name
			return a
		}
	}
	// The fallback rule always matches.
	panic("decision: no rule matched")
}

func (e *Engine) planRule(s *session.State) (Action, bool) {
	if len(s.Planned()) > 0 || s.ConceptCount() > 0 {
		return Action{}, false
	}
	return Action{
		Kind:   KindPlanLearningPath,
		Reason: "No learning path planned yet",
		Plan: &PlanArgs{
			Topic:       s.Topic,
			Difficulty:  s.Difficulty,
			MaxConcepts: e.defaults.MaxConcepts,
		},
	}, true
}

func (e *Engine) addFirstPlannedRule(s *session.State) (Action, bool) {
	planned := s.Planned()
	if len(planned) == 0 || s.ConceptCount() > 0 {
		return Action{}, false
	}
	return Action{
		Kind:       KindAddConcept,
		Concept:    planned[0],
		Difficulty: s.Difficulty,
		Reason:     "Adding first concept: " + planned[0],
	}, true
}

func (e *Engine) retryRule(s *session.State) (Action, bool) {
	pending := s.ConceptsNeedingRetry()
	if len(pending) == 0 {
		return Action{}, false
	}
	name := pending[0]
	c := s.Concept(name)
	if c == nil {
		next, ok := s.NextUntaughtConcept()
		if !ok {
			return Action{}, false
		}
		return Action{
			Kind:    KindSetCurrentConcept,
			Concept: next,
			Reason:  "Skipping invalid retry concept, moving to: " + next,
		}, true
	}

	mgr := retry.NewManager(s)
	if mgr.ShouldAdaptDifficulty(name) {
		return Action{
			Kind:    KindAdaptDifficulty,
			Concept: name,
			Reason:  fmt.Sprintf("Concept %s exceeded max retries (%d), adapting difficulty", name, retry.MaxRetries),
		}, true
	}
	if !mgr.CanRetry(name) {
		return Action{
			Kind:    KindAdaptDifficulty,
			Concept: name,
			Reason:  fmt.Sprintf("Concept %s cannot be retried further, adapting difficulty", name),
		}, true
	}

	strategy := retry.StrategyFor(name, c.RetryCount(), c.Score(), c.Difficulty())
	return Action{
		Kind:    KindTeachConcept,
		Concept: name,
		Reason: fmt.Sprintf("Retrying concept: %s (attempt %d/%d, strategy: %s)",
			name, c.RetryCount()+1, retry.MaxRetries, strategy.Name),
		Teach: &TeachArgs{
			Concept:      name,
			Difficulty:   c.Difficulty(),
			Context:      strategy.Context(),
			RetryAttempt: c.RetryCount(),
			Strategy:     strategy.Name,
		},
	}, true
}

func (e *Engine) selectCurrentRule(s *session.State) (Action, bool) {
	if s.CurrentConcept() != "" {
		return Action{}, false
	}
	next, ok := s.NextUntaughtConcept()
	if !ok {
		return Action{}, false
	}
	return setCurrent(s, next, "Setting current concept to: "+next), true
}

func (e *Engine) addCurrentRule(s *session.State) (Action, bool) {
	current := s.CurrentConcept()
	if current == "" || s.Concept(current) != nil {
		return Action{}, false
	}
	return Action{
		Kind:       KindAddConcept,
		Concept:    current,
		Difficulty: s.Difficulty,
		Reason:     "Adding current concept: " + current,
	}, true
}

func (e *Engine) currentStatusRule(s *session.State) (Action, bool) {
	current := s.CurrentConcept()
	c := s.Concept(current)
	if c == nil {
		return Action{}, false
	}

	switch c.Status() {
	case progress.StatusNotStarted, progress.StatusInProgress:
		return Action{
			Kind:    KindTeachConcept,
			Concept: current,
			Reason:  "Teaching concept: " + current,
			Teach: &TeachArgs{
				Concept:    current,
				Difficulty: c.Difficulty(),
				Context:    teachingContext(s),
			},
		}, true

	case progress.StatusTaught:
		return Action{
			Kind:    KindGenerateQuiz,
			Concept: current,
			Reason:  "Generating quiz for: " + current,
			Quiz: &QuizArgs{
				Concept:       current,
				Difficulty:    c.Difficulty(),
				NumQuestions:  e.defaults.NumQuestions,
				QuestionTypes: append([]evaluator.QuestionType(nil), e.defaults.QuestionTypes...),
			},
		}, true

	case progress.StatusQuizzed:
		if v, ok := c.Score().Value(); ok && v < progress.PassThreshold {
			return Action{
				Kind:    KindTeachConcept,
				Concept: current,
				Reason:  fmt.Sprintf("Re-teaching %s due to low score", current),
				Teach: &TeachArgs{
					Concept:    current,
					Difficulty: c.Difficulty(),
					Context:    fmt.Sprintf("Re-teaching after low quiz score (%.2f)", v),
				},
			}, true
		}
		if next, ok := s.NextUntaughtConcept(); ok {
			return setCurrent(s, next, "Moving to next concept: "+next), true
		}

	case progress.StatusMastered:
		if next, ok := s.NextUntaughtConcept(); ok {
			return setCurrent(s, next, "Concept mastered, moving to: "+next), true
		}
		return Action{Kind: KindSessionComplete, Reason: "All concepts mastered"}, true
	}
	return Action{}, false
}

func (e *Engine) fallbackRule(s *session.State) (Action, bool) {
	if next, ok := s.NextUntaughtConcept(); ok {
		return setCurrent(s, next, "Moving to next concept: "+next), true
	}
	return Action{Kind: KindSessionComplete, Reason: "No more concepts to teach"}, true
}

// setCurrent builds a set_current_concept action. Difficulty is carried
// so the controller can materialize a planned concept that has no record.
func setCurrent(s *session.State, name, reason string) Action {
	return Action{
		Kind:       KindSetCurrentConcept,
		Concept:    name,
		Difficulty: s.Difficulty,
		Reason:     reason,
	}
}

// teachingContext lists up to three already-taught concepts.
func teachingContext(s *session.State) string {
	taught := s.TaughtConcepts()
	if len(taught) == 0 {
		return ""
	}
	return "Learner has already learned: " + strings.Join(taught[:min(3, len(taught))], ", ")
}
