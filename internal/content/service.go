package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/progress"
)

// LLMService implements Service using an LLM provider.
type LLMService struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMService creates a content service backed by provider.
func NewLLMService(provider llm.Provider, cfg Config) *LLMService {
	return &LLMService{provider: provider, cfg: cfg}
}

type planOutput struct {
	Concepts []planConceptOutput `json:"concepts"`
}

type planConceptOutput struct {
	Name       string `json:"concept_name"`
	Difficulty string `json:"difficulty"`
	Order      int    `json:"order"`
}

type learningPath struct {
	Concepts []PlannedConcept `validate:"required,min=1,dive"`
}

// Plan asks the LLM for a learning path. A response that fails the schema
// but reads as a numbered list of concept names is accepted as a plan.
func (s *LLMService) Plan(ctx context.Context, req PlanRequest) ([]PlannedConcept, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePlan)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: plannerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanMessage(req)},
		},
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.Plan.MaxTokens,
		Temperature: s.cfg.Plan.Temperature,
	})
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			if concepts := ParseNumberedList(rawText(inv.Content), req.Difficulty, req.MaxConcepts); len(concepts) > 0 {
				return concepts, nil
			}
		}
		return nil, fmt.Errorf("plan learning path: %w", err)
	}

	var out planOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}

	path := learningPath{Concepts: normalizePlan(out.Concepts, req)}
	if err := validate.Struct(path); err != nil {
		return nil, fmt.Errorf("plan learning path: %s", describe(err))
	}
	return path.Concepts, nil
}

// normalizePlan orders concepts, drops blank and duplicate names, fills
// unknown difficulties with the requested one and caps the list at
// MaxConcepts. Orders are renumbered from 1.
func normalizePlan(raw []planConceptOutput, req PlanRequest) []PlannedConcept {
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].Order < raw[j].Order })

	seen := make(map[string]bool)
	var out []PlannedConcept
	for _, c := range raw {
		name := strings.TrimSpace(c.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		level, err := progress.ParseDifficulty(c.Difficulty)
		if err != nil {
			level = req.Difficulty
		}
		out = append(out, PlannedConcept{Name: name, Difficulty: level, Order: len(out) + 1})
		if req.MaxConcepts > 0 && len(out) >= req.MaxConcepts {
			break
		}
	}
	return out
}

// ParseNumberedList reads lines such as "1. Variables" into planned
// concepts at the given difficulty. Lines that do not start with a number
// are ignored.
func ParseNumberedList(text string, difficulty progress.Difficulty, maxConcepts int) []PlannedConcept {
	var out []PlannedConcept
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		num, name, ok := strings.Cut(line, ".")
		if !ok {
			continue
		}
		order, err := strconv.Atoi(strings.TrimSpace(num))
		name = strings.TrimSpace(name)
		if err != nil || name == "" {
			continue
		}
		out = append(out, PlannedConcept{Name: name, Difficulty: difficulty, Order: order})
		if maxConcepts > 0 && len(out) >= maxConcepts {
			break
		}
	}
	return out
}

// rawText returns the text of a provider payload: the decoded string for a
// JSON string, the raw bytes otherwise.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Teach returns a plain-text lesson.
func (s *LLMService) Teach(ctx context.Context, req TeachRequest) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTeach)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: teacherSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTeachMessage(req)},
		},
		MaxTokens:   s.cfg.Teach.MaxTokens,
		Temperature: s.cfg.Teach.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("teach %q: %w", req.Concept, err)
	}

	lesson := strings.TrimSpace(resp.Text())
	if lesson == "" {
		return "", fmt.Errorf("teach %q: empty lesson", req.Concept)
	}
	return lesson, nil
}

// Quiz generates and validates a quiz. Every failure is a *QuizError
// carrying the offending payload.
func (s *LLMService) Quiz(ctx context.Context, req QuizRequest) (*evaluator.Quiz, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizMessage(req)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.Quiz.MaxTokens,
		Temperature: s.cfg.Quiz.Temperature,
	})
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return nil, newQuizError(req.Concept, inv.Content, err)
		}
		var trunc *llm.ErrMaxTokensExceeded
		if errors.As(err, &trunc) {
			return nil, newQuizError(req.Concept, trunc.Content, err)
		}
		return nil, &QuizError{Concept: req.Concept, Err: err}
	}

	var quiz evaluator.Quiz
	if err := json.Unmarshal(resp.Content, &quiz); err != nil {
		return nil, newQuizError(req.Concept, resp.Content, fmt.Errorf("parse quiz: %w", err))
	}
	normalizeQuiz(&quiz, req)

	for _, v := range s.cfg.Validators {
		if verr := v.Validate(&quiz, req); verr != nil {
			return nil, newQuizError(req.Concept, resp.Content, verr)
		}
	}
	return &quiz, nil
}

// normalizeQuiz fills bookkeeping fields the model may leave out. It never
// touches questions or answer keys.
func normalizeQuiz(q *evaluator.Quiz, req QuizRequest) {
	if q.ConceptName == "" {
		q.ConceptName = req.Concept
	}
	if q.Difficulty == "" {
		q.Difficulty = req.Difficulty.String()
	}
	for i := range q.Questions {
		qq := &q.Questions[i]
		qq.Type = evaluator.QuestionType(strings.ToLower(string(qq.Type)))
		if qq.Number == 0 {
			qq.Number = i + 1
		}
	}
	q.TotalQuestions = len(q.Questions)
}
