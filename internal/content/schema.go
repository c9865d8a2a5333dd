package content

import "github.com/abhisek/studybuddy/internal/llm"

// PlanSchema defines the JSON schema for learning path generation.
var PlanSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "An ordered list of concepts to teach for a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"concept_name": map[string]any{
							"type":        "string",
							"description": "Short name of the concept (2-6 words)",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"beginner", "intermediate", "advanced"},
						},
						"order": map[string]any{
							"type":        "integer",
							"description": "Position in the learning path, starting at 1",
						},
					},
					"required":             []any{"concept_name", "difficulty", "order"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"concepts"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "concept-quiz",
	Description: "A quiz with an answer key for one concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concept_name": map[string]any{
				"type": "string",
			},
			"difficulty_level": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced"},
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_number": map[string]any{
							"type": "integer",
						},
						"question_type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "short_answer", "true_false"},
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Answer options for multiple_choice questions, empty otherwise",
						},
						"correct_answer": map[string]any{
							"type": "string",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of the correct answer",
						},
					},
					"required":             []any{"question_number", "question_type", "question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
			"total_questions": map[string]any{
				"type": "integer",
			},
		},
		"required":             []any{"concept_name", "difficulty_level", "questions", "total_questions"},
		"additionalProperties": false,
	},
}
