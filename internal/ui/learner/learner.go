// Package learner is the interactive terminal learner. Each lesson and quiz
// runs as its own Bubble Tea program.
package learner

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/agent"
	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/session"
)

// TUI presents lessons and collects quiz answers in the terminal.
type TUI struct {
	state    *session.State
	programs []tea.ProgramOption
	run      func(context.Context, tea.Model) (tea.Model, error)
}

var _ agent.Learner = (*TUI)(nil)

// Option configures a TUI.
type Option func(*TUI)

// WithState shows the mastery progress of state in the header.
func WithState(s *session.State) Option {
	return func(t *TUI) { t.state = s }
}

// WithProgramOptions passes extra options to every Bubble Tea program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(t *TUI) { t.programs = append(t.programs, opts...) }
}

// New creates a terminal learner.
func New(opts ...Option) *TUI {
	t := &TUI{}
	t.run = t.runProgram
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TUI) runProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programs...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return final, nil
}

// Study shows the lesson page by page. Quitting returns agent.ErrLearnerQuit.
func (t *TUI) Study(ctx context.Context, concept, text string) error {
	m, err := newLessonModel(concept, text, t.status())
	if err != nil {
		return err
	}
	final, err := t.run(ctx, m)
	if err != nil {
		return fmt.Errorf("lesson view: %w", err)
	}
	if lm, ok := final.(lessonModel); ok && lm.quit {
		return agent.ErrLearnerQuit
	}
	return nil
}

// AnswerQuiz asks every question and returns the answers in question order.
func (t *TUI) AnswerQuiz(ctx context.Context, quiz *evaluator.Quiz) ([]evaluator.Answer, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}
	final, err := t.run(ctx, newQuizModel(quiz, t.status()))
	if err != nil {
		return nil, fmt.Errorf("quiz view: %w", err)
	}
	qm, ok := final.(quizModel)
	if !ok {
		return nil, fmt.Errorf("quiz view: unexpected model %T", final)
	}
	if qm.quit {
		return qm.answers, agent.ErrLearnerQuit
	}
	return qm.answers, nil
}

func (t *TUI) status() string {
	if t.state == nil {
		return ""
	}
	return fmt.Sprintf("✓ %d/%d mastered", len(t.state.MasteredConcepts()), t.state.ConceptCount())
}
