package content

// GenConfig holds the LLM settings for one kind of generation.
type GenConfig struct {
	MaxTokens   int
	Temperature float64
}

// Config controls the behavior of the LLMService.
type Config struct {
	Plan  GenConfig
	Teach GenConfig
	Quiz  GenConfig

	// Validators run in order on every generated quiz; the first failure
	// rejects the quiz.
	Validators []QuizValidator
}

// DefaultConfig returns the standard validator chain and recommended
// generation settings.
func DefaultConfig() Config {
	return Config{
		Plan:  GenConfig{MaxTokens: 1024, Temperature: 0.3},
		Teach: GenConfig{MaxTokens: 2048, Temperature: 0.7},
		Quiz:  GenConfig{MaxTokens: 2048, Temperature: 0.5},
		Validators: []QuizValidator{
			&StructuralValidator{},
			&QuestionTypeValidator{},
			&AnswerKeyValidator{},
		},
	}
}
