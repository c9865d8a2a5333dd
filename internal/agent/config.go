package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studybuddy/internal/decision"
	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
)

// Config holds the session tuning knobs.
type Config struct {
	// MaxIterations bounds the observe/decide/act loop.
	MaxIterations int `yaml:"max_iterations"`

	// MaxConcepts caps the planned learning path.
	MaxConcepts int `yaml:"max_concepts"`

	// Difficulty is the starting session difficulty.
	Difficulty progress.Difficulty `yaml:"difficulty"`

	Quiz QuizConfig `yaml:"quiz"`
}

// QuizConfig controls generated quizzes.
type QuizConfig struct {
	NumQuestions  int                      `yaml:"num_questions"`
	QuestionTypes []evaluator.QuestionType `yaml:"question_types"`
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	d := decision.DefaultDefaults()
	return Config{
		MaxIterations: 50,
		MaxConcepts:   d.MaxConcepts,
		Difficulty:    progress.Beginner,
		Quiz: QuizConfig{
			NumQuestions:  d.NumQuestions,
			QuestionTypes: d.QuestionTypes,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.MaxConcepts < 1 {
		return fmt.Errorf("max_concepts must be at least 1, got %d", c.MaxConcepts)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("difficulty %s is out of range", c.Difficulty)
	}
	if c.Quiz.NumQuestions < 1 {
		return fmt.Errorf("quiz.num_questions must be at least 1, got %d", c.Quiz.NumQuestions)
	}
	for _, t := range c.Quiz.QuestionTypes {
		switch t {
		case evaluator.TypeMultipleChoice, evaluator.TypeShortAnswer, evaluator.TypeTrueFalse:
		default:
			return fmt.Errorf("unknown quiz question type %q", t)
		}
	}
	return nil
}

// decisionDefaults maps the config onto decision engine arguments.
func (c Config) decisionDefaults() decision.Defaults {
	return decision.Defaults{
		MaxConcepts:   c.MaxConcepts,
		NumQuestions:  c.Quiz.NumQuestions,
		QuestionTypes: c.Quiz.QuestionTypes,
	}
}
