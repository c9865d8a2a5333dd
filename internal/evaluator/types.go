package evaluator

// QuestionType tags how a question is scored.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeTrueFalse      QuestionType = "true_false"
)

// Question is one quiz item together with its answer key.
type Question struct {
	Number        int          `json:"question_number" validate:"min=1"`
	Type          QuestionType `json:"question_type" validate:"required"`
	Text          string       `json:"question" validate:"required"`
	Options       []string     `json:"options,omitempty" validate:"required_if=Type multiple_choice"`
	CorrectAnswer string       `json:"correct_answer" validate:"required"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Quiz is a generated quiz for one concept.
type Quiz struct {
	ConceptName    string     `json:"concept_name" validate:"required"`
	Difficulty     string     `json:"difficulty_level"`
	Questions      []Question `json:"questions" validate:"required,min=1,dive"`
	TotalQuestions int        `json:"total_questions"`
}

// Answer is a learner's response to the question with the given number.
type Answer struct {
	QuestionNumber int    `json:"question_number"`
	Answer         string `json:"answer"`
}

// AnswerSheet is the wire shape of a batch of learner answers.
type AnswerSheet struct {
	Answers []Answer `json:"answers"`
}

// QuestionScore is the scored outcome of a single question.
type QuestionScore struct {
	QuestionNumber int     `json:"question_number"`
	Score          float64 `json:"score"`
	IsCorrect      bool    `json:"is_correct"`
	Feedback       string  `json:"feedback"`
}

// Result is the aggregate outcome of evaluating a quiz. Error is set only
// when the input could not be parsed, in which case every counter is zero.
type Result struct {
	Error              string          `json:"error,omitempty"`
	TotalQuestions     int             `json:"total_questions"`
	QuestionsEvaluated int             `json:"questions_evaluated"`
	Scores             []QuestionScore `json:"scores"`
	TotalScore         float64         `json:"total_score"`
	AverageScore       float64         `json:"average_score"`
	OverallPercentage  float64         `json:"overall_percentage"`
}

// Failed reports whether the evaluation could not be performed.
func (r Result) Failed() bool { return r.Error != "" }
