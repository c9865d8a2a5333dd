package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/evaluator"
	"github.com/abhisek/studybuddy/internal/progress"
)

const (
	plannerSystemPrompt = `You are a curriculum designer. You break a subject into a short sequence of focused concepts, ordered so that each concept builds on the ones before it.`
	teacherSystemPrompt = `You are a patient, encouraging tutor. You explain one concept at a time, matching vocabulary and depth to the learner's level.`
	quizSystemPrompt    = `You are an assessment writer. You write short quizzes with an unambiguous answer key that can be graded automatically.`
)

type teachingGuide struct {
	Vocabulary     string
	Examples       string
	Depth          string
	TechnicalTerms string
}

var teachingGuides = map[progress.Difficulty]teachingGuide{
	progress.Beginner: {
		Vocabulary:     "simple, everyday language",
		Examples:       "real-world analogies and simple code examples",
		Depth:          "surface-level understanding, focus on practical use",
		TechnicalTerms: "define all technical terms when first used",
	},
	progress.Intermediate: {
		Vocabulary:     "balanced mix of technical and accessible language",
		Examples:       "practical code examples with some context",
		Depth:          "moderate depth with explanations of why things work",
		TechnicalTerms: "assume some familiarity with common terms",
	},
	progress.Advanced: {
		Vocabulary:     "technical, precise terminology",
		Examples:       "sophisticated code examples and edge cases",
		Depth:          "deep understanding with underlying mechanisms",
		TechnicalTerms: "assume familiarity with domain terminology",
	},
}

type quizGuide struct {
	Complexity string
	Depth      string
	Examples   string
}

var quizGuides = map[progress.Difficulty]quizGuide{
	progress.Beginner: {
		Complexity: "simple, fundamental questions",
		Depth:      "surface-level understanding",
		Examples:   "basic application questions",
	},
	progress.Intermediate: {
		Complexity: "moderately challenging questions",
		Depth:      "deeper understanding with some application",
		Examples:   "practical application questions",
	},
	progress.Advanced: {
		Complexity: "complex, nuanced questions",
		Depth:      "deep understanding with edge cases",
		Examples:   "sophisticated application and analysis questions",
	},
}

func buildPlanMessage(req PlanRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Break down the topic %q into %d key concepts to teach.\n", req.Topic, req.MaxConcepts)
	fmt.Fprintf(&b, `
Requirements:
- Create a logical learning sequence where each concept builds on previous ones
- Overall difficulty level: %s
- Each concept should be specific and focused
- Order concepts from fundamental to advanced
- Consider prerequisites between concepts

Return the concepts in teaching order. Number them with "order" starting at 1.`, req.Difficulty)

	return b.String()
}

func buildTeachMessage(req TeachRequest) string {
	guide, ok := teachingGuides[req.Difficulty]
	if !ok {
		guide = teachingGuides[progress.Beginner]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a clear, structured explanation of the concept %q at %s level.\n\n", req.Concept, req.Difficulty)

	b.WriteString("Difficulty Level Guidelines:\n")
	fmt.Fprintf(&b, "- Vocabulary: %s\n", guide.Vocabulary)
	fmt.Fprintf(&b, "- Examples: %s\n", guide.Examples)
	fmt.Fprintf(&b, "- Depth: %s\n", guide.Depth)
	fmt.Fprintf(&b, "- Technical Terms: %s\n", guide.TechnicalTerms)

	if req.Context != "" {
		fmt.Fprintf(&b, "\nContext: %s\n", req.Context)
	}

	fmt.Fprintf(&b, `
Structure your explanation as follows:
1. Introduction: Briefly introduce what %[1]s is and why it matters
2. Core Explanation: Explain the concept clearly, adapting to %[2]s level
3. Examples: Provide %[3]s that illustrate the concept
4. Key Takeaways: Summarize the most important points

Use plain text with short paragraphs. Do not ask the learner questions; a quiz follows.`,
		req.Concept, req.Difficulty, guide.Examples)

	return b.String()
}

func buildQuizMessage(req QuizRequest) string {
	guide, ok := quizGuides[req.Difficulty]
	if !ok {
		guide = quizGuides[progress.Beginner]
	}

	types := make([]string, 0, len(req.QuestionTypes))
	for _, t := range req.QuestionTypes {
		types = append(types, string(t))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a quiz with %d questions about %q at %s level.\n\n", req.NumQuestions, req.Concept, req.Difficulty)

	b.WriteString("Difficulty Level Guidelines:\n")
	fmt.Fprintf(&b, "- Question Complexity: %s\n", guide.Complexity)
	fmt.Fprintf(&b, "- Depth: %s\n", guide.Depth)
	fmt.Fprintf(&b, "- Examples: %s\n\n", guide.Examples)

	fmt.Fprintf(&b, "Question Types to Include: %s\n", strings.Join(types, ", "))

	fmt.Fprintf(&b, `
Requirements:
- Each question should test understanding of %s
- Include a mix of question types if multiple types are specified
- Number questions with "question_number" starting at 1
- For %s questions, provide 4 options and make "correct_answer" the exact text of one option
- For %s questions, "correct_answer" is a short phrase containing the key terms
- For %s questions, "correct_answer" is "true" or "false"
- Include a brief explanation for each answer`,
		req.Concept, evaluator.TypeMultipleChoice, evaluator.TypeShortAnswer, evaluator.TypeTrueFalse)

	return b.String()
}
