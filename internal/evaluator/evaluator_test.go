package evaluator

import (
	"reflect"
	"testing"
)

var storageOptions = []string{
	"A labeled storage location",
	"A function",
	"A loop",
	"A comment",
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Hello, World!  ", "hello world"},
		{"A labeled storage location.", "a labeled storage location"},
		{"snake_case stays", "snake_case stays"},
		{"Héllo", "héllo"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords("The quick brown fox jumps over the lazy dog")
	want := []string{"quick", "brown", "fox", "jumps", "over"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
	if kw := Keywords("it is a an"); len(kw) != 0 {
		t.Errorf("stop words only: got %v", kw)
	}
}

func TestScoreMultipleChoice(t *testing.T) {
	correct := "A labeled storage location"
	tests := []struct {
		name    string
		learner string
		options []string
		want    float64
	}{
		{"exact", "A labeled storage location", storageOptions, 1.0},
		{"exact after normalization", "a labeled storage location!", storageOptions, 1.0},
		{"different option", "A function", storageOptions, 0.0},
		{"substring of correct", "labeled storage", storageOptions, 0.5},
		{"substring without options", "storage location", nil, 0.5},
		{"unrelated", "banana", storageOptions, 0.0},
		{"punctuation only", "?!", storageOptions, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreMultipleChoice(tt.learner, correct, tt.options); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreShortAnswer(t *testing.T) {
	tests := []struct {
		name             string
		learner, correct string
		want             float64
	}{
		{"exact", "A labeled storage location", "A labeled storage location", 1.0},
		{"containment", "storage location", "A labeled storage location", 0.7},
		{"high overlap missing keyword", "stores value", "A variable stores a value", 0.6},
		{"all keywords boosted", "code blocks repeat loops", "Loops repeat code blocks", 0.8},
		{"forty percent", "red green purple", "red green blue yellow orange", 0.4},
		{"twenty percent", "red zzz", "red green blue yellow orange", 0.2},
		{"no overlap", "qqq", "red green blue yellow orange", 0.0},
		{"punctuation only", "?!", "A labeled storage location", 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreShortAnswer(tt.learner, tt.correct); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreQuestion_TypeDispatch(t *testing.T) {
	tf := Question{Number: 1, Type: TypeTrueFalse, CorrectAnswer: "True"}
	if got := ScoreQuestion(tf, "true."); got != 1.0 {
		t.Errorf("true/false match = %v", got)
	}
	if got := ScoreQuestion(tf, "false"); got != 0.0 {
		t.Errorf("true/false mismatch = %v", got)
	}

	// Unknown types only accept an exact match, even when a substring would
	// earn partial credit as a short answer.
	essay := Question{Number: 2, Type: "essay", CorrectAnswer: "storage location"}
	if got := ScoreQuestion(essay, "storage"); got != 0.0 {
		t.Errorf("unknown type partial = %v", got)
	}

	upper := Question{Number: 3, Type: "SHORT_ANSWER", CorrectAnswer: "storage location"}
	if got := ScoreQuestion(upper, "storage"); got != 0.7 {
		t.Errorf("type tag should be case-insensitive, got %v", got)
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, FeedbackCorrect},
		{0.8, FeedbackCorrect},
		{0.7, FeedbackMostlyCorrect},
		{0.6, FeedbackMostlyCorrect},
		{0.5, FeedbackPartial},
		{0.4, FeedbackPartial},
		{0.2, FeedbackSome},
		{0.0, FeedbackIncorrect},
	}
	for _, tt := range tests {
		if got := Feedback(tt.score); got != tt.want {
			t.Errorf("Feedback(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestEvaluate_SingleMultipleChoice(t *testing.T) {
	quiz := Quiz{
		ConceptName: "Variables",
		Questions: []Question{{
			Number:        1,
			Type:          TypeMultipleChoice,
			Text:          "What is a variable?",
			Options:       storageOptions,
			CorrectAnswer: "A labeled storage location",
		}},
	}
	res := Evaluate(quiz, []Answer{{QuestionNumber: 1, Answer: "A labeled storage location"}})

	if len(res.Scores) != 1 {
		t.Fatalf("scores = %d, want 1", len(res.Scores))
	}
	s := res.Scores[0]
	if s.Score != 1.0 || !s.IsCorrect || s.Feedback != FeedbackCorrect {
		t.Errorf("score = %+v", s)
	}
	if res.AverageScore != 1.0 || res.OverallPercentage != 100.0 {
		t.Errorf("aggregate = %v / %v", res.AverageScore, res.OverallPercentage)
	}
}

func TestEvaluate_UnansweredCountsAsZero(t *testing.T) {
	quiz := Quiz{Questions: []Question{
		{Number: 1, Type: TypeTrueFalse, CorrectAnswer: "true"},
		{Number: 2, Type: TypeTrueFalse, CorrectAnswer: "false"},
		{Number: 3, Type: TypeTrueFalse, CorrectAnswer: "true"},
	}}
	answers := []Answer{
		{QuestionNumber: 1, Answer: "true"},
		{QuestionNumber: 3, Answer: "false"},
		{QuestionNumber: 9, Answer: "stray"},
	}
	res := Evaluate(quiz, answers)

	if res.TotalQuestions != 3 || res.QuestionsEvaluated != 2 {
		t.Errorf("counts = %d/%d, want 3/2", res.QuestionsEvaluated, res.TotalQuestions)
	}
	if res.Scores[1].Feedback != FeedbackNoAnswer || res.Scores[1].Score != 0 {
		t.Errorf("unanswered = %+v", res.Scores[1])
	}
	if res.TotalScore != 1.0 {
		t.Errorf("TotalScore = %v", res.TotalScore)
	}
	if res.AverageScore != 0.33 || res.OverallPercentage != 33.33 {
		t.Errorf("aggregate = %v / %v, want 0.33 / 33.33", res.AverageScore, res.OverallPercentage)
	}
}

func TestEvaluate_PunctuationOnlyShortAnswer(t *testing.T) {
	quiz := Quiz{Questions: []Question{
		{Number: 1, Type: TypeShortAnswer, CorrectAnswer: "A labeled storage location"},
	}}
	res := Evaluate(quiz, []Answer{{QuestionNumber: 1, Answer: "?!"}})

	if got := res.Scores[0]; got.Score != 0.7 || got.Feedback != FeedbackMostlyCorrect {
		t.Errorf("score = %v %q, want 0.7 %q", got.Score, got.Feedback, FeedbackMostlyCorrect)
	}
}

func TestEvaluate_RoundsHalfToEven(t *testing.T) {
	var quiz Quiz
	answers := []Answer{{QuestionNumber: 1, Answer: "true"}}
	for i := 1; i <= 8; i++ {
		quiz.Questions = append(quiz.Questions, Question{Number: i, Type: TypeTrueFalse, CorrectAnswer: "true"})
		if i > 1 {
			answers = append(answers, Answer{QuestionNumber: i, Answer: "false"})
		}
	}
	res := Evaluate(quiz, answers)

	// 1/8 = 0.125
	if res.AverageScore != 0.12 {
		t.Errorf("AverageScore = %v, want 0.12", res.AverageScore)
	}
	if res.OverallPercentage != 12.5 {
		t.Errorf("OverallPercentage = %v, want 12.5", res.OverallPercentage)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	quiz := Quiz{Questions: []Question{
		{Number: 1, Type: TypeShortAnswer, CorrectAnswer: "Loops repeat code blocks"},
		{Number: 2, Type: TypeMultipleChoice, Options: storageOptions, CorrectAnswer: "A loop"},
	}}
	answers := []Answer{
		{QuestionNumber: 2, Answer: "A comment"},
		{QuestionNumber: 1, Answer: "code blocks repeat loops"},
	}
	first := Evaluate(quiz, answers)
	second := Evaluate(quiz, answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
	if first.AverageScore != 0.4 {
		t.Errorf("AverageScore = %v, want 0.4", first.AverageScore)
	}
}

func TestEvaluate_EmptyQuiz(t *testing.T) {
	res := Evaluate(Quiz{}, nil)
	if res.Failed() || res.TotalQuestions != 0 || res.AverageScore != 0 {
		t.Errorf("empty quiz = %+v", res)
	}
}

func TestEvaluateJSON(t *testing.T) {
	quiz := []byte(`{"concept_name":"Variables","questions":[
		{"question_number":1,"question_type":"multiple_choice","question":"What is a variable?",
		 "options":["A labeled storage location","A function"],"correct_answer":"A labeled storage location"}]}`)
	answers := []byte(`{"answers":[{"question_number":1,"answer":"A labeled storage location"}]}`)

	res := EvaluateJSON(quiz, answers)
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Scores[0].Score != 1.0 || !res.Scores[0].IsCorrect {
		t.Errorf("score = %+v", res.Scores[0])
	}
}

func TestEvaluateJSON_Malformed(t *testing.T) {
	tests := []struct {
		name          string
		quiz, answers string
	}{
		{"quiz not json", `not json`, `{"answers":[]}`},
		{"answers not json", `{"questions":[]}`, `{`},
		{"wrong shape", `{"questions":"nope"}`, `{"answers":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluateJSON([]byte(tt.quiz), []byte(tt.answers))
			if !res.Failed() {
				t.Fatal("expected structured error")
			}
			if res.TotalQuestions != 0 || res.QuestionsEvaluated != 0 || res.TotalScore != 0 ||
				res.AverageScore != 0 || res.OverallPercentage != 0 || len(res.Scores) != 0 {
				t.Errorf("counters not zeroed: %+v", res)
			}
		})
	}
}
