// Package agent runs a tutoring session: it observes the session state,
// asks the decision engine for the next action, executes it against the
// content service and the learner, and folds the result back into state.
package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/abhisek/studybuddy/internal/content"
	"github.com/abhisek/studybuddy/internal/decision"
	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
)

// snapshotsKept is how many state snapshots are retained per session.
const snapshotsKept = 5

// Stop reasons reported in a Summary.
const (
	StopBudget    = "iteration budget reached"
	StopComplete  = "session complete"
	StopMastered  = "all planned concepts mastered"
	StopStalled   = "no further progress possible"
	StopQuit      = "learner quit"
	StopCancelled = "cancelled"
)

// Journal records one event per step.
type Journal interface {
	AppendStep(ctx context.Context, data store.StepEventData) error
}

// Agent is the controller for one session. It exclusively owns its state
// and is not safe for concurrent use.
type Agent struct {
	state   *session.State
	content content.Service
	engine  *decision.Engine
	cfg     Config

	learner   Learner
	logger    *slog.Logger
	journal   Journal
	snapshots store.SnapshotRepo
	clock     func() time.Time

	iteration int
	history   []StepRecord

	pendingQuiz    *evaluator.Quiz
	pendingConcept string

	completed bool
	stalled   bool
	quit      bool
}

// Option configures an Agent.
type Option func(*Agent)

// WithLearner attaches the learner that studies lessons and answers quizzes.
// Without one, generated quizzes wait for SubmitAnswers.
func WithLearner(l Learner) Option {
	return func(a *Agent) { a.learner = l }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithJournal records every step to j.
func WithJournal(j Journal) Option {
	return func(a *Agent) { a.journal = j }
}

// WithSnapshots saves an observation snapshot after every step.
func WithSnapshots(r store.SnapshotRepo) Option {
	return func(a *Agent) { a.snapshots = r }
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(a *Agent) { a.cfg = cfg }
}

// WithClock overrides time.Now for step timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.clock = now }
}

// New creates a controller for state using svc for content generation.
func New(state *session.State, svc content.Service, opts ...Option) *Agent {
	a := &Agent{
		state:   state,
		content: svc,
		cfg:     DefaultConfig(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.engine = decision.New(a.cfg.decisionDefaults())
	return a
}

// State returns the session state the agent drives.
func (a *Agent) State() *session.State { return a.state }

// Iteration returns the number of steps taken.
func (a *Agent) Iteration() int { return a.iteration }

// History returns the steps taken so far.
func (a *Agent) History() []StepRecord {
	return append([]StepRecord(nil), a.history...)
}

// Observe captures the current session metrics.
func (a *Agent) Observe() session.Observation {
	return a.state.Observe()
}

// Decide returns the next action for the current state.
func (a *Agent) Decide() decision.Action {
	return a.engine.Decide(a.state)
}

// Step runs one observe, decide and act cycle and records it.
func (a *Agent) Step(ctx context.Context) StepRecord {
	before := a.Observe()
	action := a.Decide()
	result := a.Act(ctx, action)
	a.iteration++

	rec := StepRecord{
		Iteration: a.iteration,
		Time:      a.clock(),
		Action:    action,
		Result:    result,
		Before:    before,
	}
	a.history = append(a.history, rec)
	a.record(ctx, rec)
	return rec
}

func (a *Agent) record(ctx context.Context, rec StepRecord) {
	attrs := []any{
		"session_id", a.state.SessionID,
		"iteration", rec.Iteration,
		"action", rec.Action.Kind,
		"concept", rec.Action.Concept,
		"reason", rec.Action.Reason,
		"success", rec.Result.Success,
	}
	if rec.Result.Success {
		a.logger.InfoContext(ctx, "step", attrs...)
	} else {
		a.logger.WarnContext(ctx, "step failed", append(attrs, "error", rec.Result.Error)...)
	}

	pct := a.state.ProgressPercentage()
	if a.journal != nil {
		err := a.journal.AppendStep(ctx, store.StepEventData{
			SessionID:    a.state.SessionID,
			Topic:        a.state.Topic,
			Iteration:    rec.Iteration,
			Action:       string(rec.Action.Kind),
			Concept:      rec.Action.Concept,
			Reason:       rec.Action.Reason,
			Success:      rec.Result.Success,
			ErrorMessage: rec.Result.Error,
			Progress:     pct * 100,
		})
		if err != nil {
			a.logger.WarnContext(ctx, "failed to journal step", "error", err)
		}
	}

	if a.snapshots != nil {
		data, err := json.Marshal(a.Observe())
		if err == nil {
			err = a.snapshots.Save(ctx, &store.Snapshot{
				SessionID: a.state.SessionID,
				Sequence:  int64(rec.Iteration),
				Timestamp: rec.Time,
				Data:      data,
			})
		}
		if err == nil {
			err = a.snapshots.Prune(ctx, a.state.SessionID, snapshotsKept)
		}
		if err != nil {
			a.logger.WarnContext(ctx, "failed to snapshot session", "error", err)
		}
	}
}

// IsComplete reports whether the loop should stop.
func (a *Agent) IsComplete() bool {
	return a.stopReason() != ""
}

func (a *Agent) stopReason() string {
	switch {
	case a.quit:
		return StopQuit
	case a.completed:
		return StopComplete
	case a.stalled:
		return StopStalled
	case a.iteration >= a.cfg.MaxIterations:
		return StopBudget
	case a.allPlannedMastered():
		return StopMastered
	case a.Decide().Kind.Terminal():
		return StopComplete
	}
	return ""
}

func (a *Agent) allPlannedMastered() bool {
	planned := a.state.Planned()
	if len(planned) == 0 {
		return false
	}
	for _, name := range planned {
		c := a.state.Concept(name)
		if c == nil || c.Status() != progress.StatusMastered {
			return false
		}
	}
	return true
}

// Run steps until the session is complete or ctx is cancelled.
func (a *Agent) Run(ctx context.Context) Summary {
	a.logger.InfoContext(ctx, "session started",
		"session_id", a.state.SessionID,
		"topic", a.state.Topic,
		"difficulty", a.state.Difficulty,
		"max_iterations", a.cfg.MaxIterations)

	reason := ""
	for {
		if ctx.Err() != nil {
			reason = StopCancelled
			break
		}
		if reason = a.stopReason(); reason != "" {
			break
		}
		a.Step(ctx)
	}

	sum := a.summary(reason)
	a.logger.InfoContext(ctx, "session finished",
		"session_id", sum.SessionID,
		"iterations", sum.Iterations,
		"mastered", len(sum.Mastered),
		"progress", sum.Progress,
		"stop_reason", reason)
	return sum
}

func (a *Agent) summary(reason string) Summary {
	obs := a.Observe()
	return Summary{
		SessionID:    obs.SessionID,
		Topic:        obs.Topic,
		Iterations:   a.iteration,
		Taught:       obs.ConceptsTaught,
		Mastered:     obs.ConceptsMastered,
		Progress:     obs.ProgressPercentage,
		AverageScore: obs.AverageScore,
		StopReason:   reason,
		History:      a.History(),
	}
}
