package llm

import "context"

// Purpose labels what an LLM call was made for. It is recorded with every
// journaled request and used to group usage statistics.
type Purpose string

const (
	PurposePlan    Purpose = "plan"
	PurposeTeach   Purpose = "teach"
	PurposeQuiz    Purpose = "quiz"
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom extracts the purpose label from the context. Unlabeled calls
// report PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
