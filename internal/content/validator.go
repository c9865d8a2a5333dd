package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/studybuddy/internal/evaluator"
)

// validate checks the struct tags on generated plans and quizzes.
var validate = validator.New()

// QuizValidator checks a generated quiz before it is handed to a learner.
// Implementations should be stateless and safe for concurrent use.
type QuizValidator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the quiz passes.
	Validate(q *evaluator.Quiz, req QuizRequest) *ValidationError
}

// StructuralValidator enforces the required fields declared on the quiz
// types.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *evaluator.Quiz, _ QuizRequest) *ValidationError {
	if err := validate.Struct(q); err != nil {
		return &ValidationError{Validator: v.Name(), Message: describe(err)}
	}
	return nil
}

// QuestionTypeValidator rejects question types the request did not ask for.
type QuestionTypeValidator struct{}

func (v *QuestionTypeValidator) Name() string { return "question-type" }

func (v *QuestionTypeValidator) Validate(q *evaluator.Quiz, req QuizRequest) *ValidationError {
	if len(req.QuestionTypes) == 0 {
		return nil
	}
	for _, qq := range q.Questions {
		if !slices.Contains(req.QuestionTypes, qq.Type) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has type %q, want one of %v", qq.Number, qq.Type, req.QuestionTypes),
			}
		}
	}
	return nil
}

// AnswerKeyValidator checks that each answer key is gradable: a
// multiple-choice key names one of its options and a true/false key is
// "true" or "false".
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *evaluator.Quiz, _ QuizRequest) *ValidationError {
	for _, qq := range q.Questions {
		switch qq.Type {
		case evaluator.TypeMultipleChoice:
			if len(qq.Options) < 2 {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d needs at least 2 options", qq.Number),
				}
			}
			if !evaluator.HasOption(qq.Options, qq.CorrectAnswer) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: correct answer %q is not one of the options", qq.Number, qq.CorrectAnswer),
				}
			}
		case evaluator.TypeTrueFalse:
			if a := evaluator.Normalize(qq.CorrectAnswer); a != "true" && a != "false" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: true/false answer is %q", qq.Number, qq.CorrectAnswer),
				}
			}
		}
	}
	return nil
}

// describe renders validator field errors as "Field: tag" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
