package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studybuddy/internal/content"
	"github.com/abhisek/studybuddy/internal/decision"
	"github.com/abhisek/studybuddy/internal/difficulty"
	"github.com/abhisek/studybuddy/internal/retry"
)

// errUnknownAction is reported for action kinds the controller cannot run.
var errUnknownAction = errors.New("unknown action")

// Act executes one action. Every error, including a panic inside a
// collaborator, is converted into a failed ActionResult.
func (a *Agent) Act(ctx context.Context, action decision.Action) (res ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ActionResult{
				Action: action.Kind,
				Error:  fmt.Sprintf("panic while executing %s: %v", action.Kind, r),
			}
		}
	}()

	out, err := a.execute(ctx, action)
	if err != nil {
		if errors.Is(err, ErrLearnerQuit) {
			a.quit = true
		}
		return ActionResult{Action: action.Kind, Result: out, Error: err.Error()}
	}
	return ActionResult{Action: action.Kind, Success: true, Result: out}
}

func (a *Agent) execute(ctx context.Context, action decision.Action) (any, error) {
	switch action.Kind {
	case decision.KindPlanLearningPath:
		return a.plan(ctx, action)
	case decision.KindAddConcept:
		if action.Concept == "" {
			return nil, errors.New("add_concept requires a concept name")
		}
		created := a.state.AddConcept(action.Concept, action.Difficulty)
		return AddResult{Concept: action.Concept, Created: created}, nil
	case decision.KindSetCurrentConcept:
		return a.setCurrent(action)
	case decision.KindTeachConcept:
		return a.teach(ctx, action)
	case decision.KindGenerateQuiz:
		return a.quiz(ctx, action)
	case decision.KindAdaptDifficulty:
		return a.adapt(action)
	case decision.KindSessionComplete:
		a.completed = true
		return CompleteResult{Message: fmt.Sprintf("Session complete: %s", action.Reason)}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownAction, action.Kind)
}

func (a *Agent) plan(ctx context.Context, action decision.Action) (any, error) {
	req := content.PlanRequest{
		Topic:       a.state.Topic,
		Difficulty:  a.state.Difficulty,
		MaxConcepts: a.cfg.MaxConcepts,
	}
	if p := action.Plan; p != nil {
		req = content.PlanRequest{Topic: p.Topic, Difficulty: p.Difficulty, MaxConcepts: p.MaxConcepts}
	}

	concepts, err := a.content.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(concepts))
	for _, c := range concepts {
		a.state.AddConcept(c.Name, c.Difficulty)
		names = append(names, c.Name)
	}
	a.state.SetPlanned(names)
	return PlanResult{Concepts: concepts}, nil
}

// setCurrent switches the current concept, creating the record of a planned
// concept on first use. Re-selecting the current concept without any state
// change means the policy has nothing left to do, so the session is marked
// stalled.
func (a *Agent) setCurrent(action decision.Action) (any, error) {
	name := action.Concept
	a.state.AddConcept(name, action.Difficulty)

	c := a.state.Concept(name)
	before := c.Status()
	wasCurrent := a.state.CurrentConcept() == name

	if err := a.state.SetCurrentConcept(name); err != nil {
		return nil, err
	}
	if wasCurrent && c.Status() == before {
		a.stalled = true
	}
	return CurrentResult{Concept: name, Status: c.Status()}, nil
}

func (a *Agent) teach(ctx context.Context, action decision.Action) (any, error) {
	req := content.TeachRequest{Concept: action.Concept}
	if c := a.state.Concept(action.Concept); c != nil {
		req.Difficulty = c.Difficulty()
	}
	if t := action.Teach; t != nil {
		req = content.TeachRequest{Concept: t.Concept, Difficulty: t.Difficulty, Context: t.Context}
	}

	lesson, err := a.content.Teach(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.state.MarkConceptTaught(req.Concept); err != nil {
		return nil, err
	}

	res := TeachResult{Concept: req.Concept, Difficulty: req.Difficulty, Lesson: lesson}
	if a.learner != nil {
		if err := a.learner.Study(ctx, req.Concept, lesson); err != nil {
			return res, fmt.Errorf("present lesson: %w", err)
		}
	}
	return res, nil
}

func (a *Agent) quiz(ctx context.Context, action decision.Action) (any, error) {
	q := action.Quiz
	if q == nil {
		return nil, errors.New("generate_quiz requires quiz arguments")
	}

	quiz, err := a.content.Quiz(ctx, content.QuizRequest{
		Concept:       q.Concept,
		Difficulty:    q.Difficulty,
		NumQuestions:  q.NumQuestions,
		QuestionTypes: q.QuestionTypes,
	})
	if err != nil {
		var qe *content.QuizError
		if errors.As(err, &qe) {
			return QuizFailure{Concept: q.Concept, Raw: qe.Raw}, err
		}
		return nil, err
	}
	a.pendingQuiz = quiz
	a.pendingConcept = q.Concept

	if a.learner == nil {
		return QuizOutcome{Concept: q.Concept, Quiz: quiz}, nil
	}
	answers, err := a.learner.AnswerQuiz(ctx, quiz)
	if err != nil {
		return QuizOutcome{Concept: q.Concept, Quiz: quiz}, fmt.Errorf("collect answers: %w", err)
	}
	return a.SubmitAnswers(answers)
}

// adapt moves the concept one difficulty level based on its quiz history
// and gives it a fresh retry budget. The concept stays needs_retry, so the
// next decision re-teaches it at the new level.
func (a *Agent) adapt(action decision.Action) (any, error) {
	c := a.state.Concept(action.Concept)
	if c == nil {
		return nil, fmt.Errorf("adapt difficulty %q: %w", action.Concept, retry.ErrConceptNotFound)
	}

	res, err := difficulty.Adapt(c.Name(), c.Difficulty(), difficulty.FromConcept(c))
	if err != nil {
		return nil, err
	}
	if res.Applied {
		if err := a.state.UpdateConceptDifficulty(c.Name(), res.New); err != nil {
			return nil, err
		}
	}
	if err := retry.NewManager(a.state).ResetRetry(c.Name()); err != nil {
		return nil, err
	}
	return AdaptResult{Result: res, RetriesReset: true}, nil
}
