package evaluator

import "strings"

// Feedback strings attached to each scored question.
const (
	FeedbackCorrect       = "Correct!"
	FeedbackMostlyCorrect = "Mostly correct, but could be more precise"
	FeedbackPartial       = "Partially correct, missing some key points"
	FeedbackSome          = "Incorrect, but shows some understanding"
	FeedbackIncorrect     = "Incorrect"
	FeedbackNoAnswer      = "No answer provided"
)

// CorrectThreshold is the minimum score counted as a correct answer.
const CorrectThreshold = 0.8

// ScoreMultipleChoice scores a multiple-choice answer. An exact normalized
// match is full credit. When both answers name different options the answer
// is wrong. Otherwise a substring relation in either direction earns half
// credit.
func ScoreMultipleChoice(learner, correct string, options []string) float64 {
	ln, cn := Normalize(learner), Normalize(correct)
	if ln == cn {
		return 1.0
	}
	if len(options) > 0 {
		li, ci := optionIndex(options, ln), optionIndex(options, cn)
		if li >= 0 && ci >= 0 && Normalize(options[li]) != Normalize(options[ci]) {
			return 0.0
		}
	}
	// An answer made only of punctuation normalizes to "" and is a substring
	// of everything, so it earns half credit here.
	if strings.Contains(ln, cn) || strings.Contains(cn, ln) {
		return 0.5
	}
	return 0.0
}

// HasOption reports whether answer matches one of the options after
// normalization.
func HasOption(options []string, answer string) bool {
	return optionIndex(options, Normalize(answer)) >= 0
}

func optionIndex(options []string, normalized string) int {
	for i, opt := range options {
		if Normalize(opt) == normalized {
			return i
		}
	}
	return -1
}

// ScoreShortAnswer scores a free-text answer by exact match, containment and
// then word overlap. A partial score is raised to 0.8 when the answer holds
// every keyword of the correct answer.
func ScoreShortAnswer(learner, correct string) float64 {
	score := shortAnswerOverlap(learner, correct)
	if score > 0 && score < 1.0 {
		if kw := Keywords(correct); len(kw) > 0 && containsAllKeywords(learner, kw) {
			score = max(score, CorrectThreshold)
		}
	}
	return score
}

func shortAnswerOverlap(learner, correct string) float64 {
	ln, cn := Normalize(learner), Normalize(correct)
	if ln == cn {
		return 1.0
	}
	// Same empty-substring rule as multiple choice: punctuation-only
	// answers score 0.7.
	if strings.Contains(cn, ln) || strings.Contains(ln, cn) {
		return 0.7
	}

	words := strings.Fields(cn)
	if len(words) == 0 {
		return 0.0
	}
	matching := 0
	for _, w := range words {
		if strings.Contains(ln, w) {
			matching++
		}
	}
	ratio := float64(matching) / float64(len(words))
	switch {
	case ratio >= 0.6:
		return 0.6
	case ratio >= 0.4:
		return 0.4
	case ratio >= 0.2:
		return 0.2
	default:
		return 0.0
	}
}

// ScoreExact gives full credit only for an exact normalized match. It is
// used for true/false and for unrecognized question types.
func ScoreExact(learner, correct string) float64 {
	if Normalize(learner) == Normalize(correct) {
		return 1.0
	}
	return 0.0
}

// Feedback maps a score onto its feedback band.
func Feedback(score float64) string {
	switch {
	case score >= 0.8:
		return FeedbackCorrect
	case score >= 0.6:
		return FeedbackMostlyCorrect
	case score >= 0.4:
		return FeedbackPartial
	case score > 0:
		return FeedbackSome
	default:
		return FeedbackIncorrect
	}
}
