package content

import (
	"fmt"
	"strings"
)

// maxRawPayload bounds the offending LLM output kept on a QuizError.
const maxRawPayload = 500

// QuizError reports a quiz that could not be generated or failed
// validation. Raw holds the start of the offending payload for diagnosis.
type QuizError struct {
	Concept string
	Raw     string
	Err     error
}

func (e *QuizError) Error() string {
	return fmt.Sprintf("generate quiz for %q: %v", e.Concept, e.Err)
}

func (e *QuizError) Unwrap() error { return e.Err }

func newQuizError(concept string, raw []byte, err error) *QuizError {
	return &QuizError{Concept: concept, Raw: truncate(raw, maxRawPayload), Err: err}
}

// truncate cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return strings.ToValidUTF8(string(b), "")
}

// ValidationError describes why a generated quiz was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
